package constants

import "time"

const (
	AppName            = "pomolit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/pomolit/pomolit.db"
	ConnectionEnvVar   = "POMOLIT_DB_CONNECTION"
	KeyringConfigValue = "keyring"
	Version            = "v0.1.0"

	// DateFormat is the day key used for focus tracking (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Session record constants
	SessionKey           = "timerSession"
	SessionFileName      = "session.json"
	SessionSchemaVersion = 2

	// Timer constants
	TickInterval      = time.Second
	LongBreakInterval = 4

	// Notify constants
	NotifierLockfileName   = "pomolit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.pomolit"
	TrayExecutablePrefix   = "pomolit-tray"
)
