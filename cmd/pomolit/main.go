package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/cli/categories"
	"github.com/julianstephens/pomolit/internal/cli/pomodoro"
	"github.com/julianstephens/pomolit/internal/cli/settings"
	"github.com/julianstephens/pomolit/internal/cli/stats"
	"github.com/julianstephens/pomolit/internal/cli/system"
	"github.com/julianstephens/pomolit/internal/constants"
	apperrors "github.com/julianstephens/pomolit/internal/errors"
	"github.com/julianstephens/pomolit/internal/keyring"
	"github.com/julianstephens/pomolit/internal/logger"
	"github.com/julianstephens/pomolit/internal/storage"
	"github.com/julianstephens/pomolit/internal/storage/postgres"
	"github.com/julianstephens/pomolit/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database file path, PostgreSQL connection string, or 'keyring' to use the connection stored in the OS keyring (or $POMOLIT_DB_CONNECTION). Credentials must NOT be embedded in a connection string passed here." type:"string" default:"~/.config/pomolit/pomolit.db"`
	Session  string `help:"Where the active session is kept: db, file or memory." enum:"db,file,memory" default:"db"`
	Debug    bool   `help:"Enable debug logging to stderr."`
	LogLevel string `help:"Log file level." enum:"debug,info,warn,error" default:"warn"`

	Init   system.InitCmd     `cmd:"" help:"Initialize pomolit storage."`
	Doctor system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Run    pomodoro.RunCmd    `cmd:"" help:"Run the current session in the foreground until it completes."`
	Start  pomodoro.StartCmd  `cmd:"" help:"Start a session in the current mode."`
	Pause  pomodoro.PauseCmd  `cmd:"" help:"Pause the running session."`
	Resume pomodoro.ResumeCmd `cmd:"" help:"Resume the paused session."`
	Reset  pomodoro.ResetCmd  `cmd:"" help:"Discard the session and return to a fresh focus timer."`
	Mode   pomodoro.ModeCmd   `cmd:"" help:"Switch mode while idle."`
	Status pomodoro.StatusCmd `cmd:"" help:"Show the timer and today's progress."`
	Stats  stats.StatsCmd     `cmd:"" help:"Show focus history per category."`

	Category struct {
		Add     categories.CategoryAddCmd     `cmd:"" help:"Add a category."`
		List    categories.CategoryListCmd    `cmd:"" help:"List categories." default:"1"`
		Edit    categories.CategoryEditCmd    `cmd:"" aliases:"rename" help:"Rename or recolor a category."`
		Delete  categories.CategoryDeleteCmd  `cmd:"" help:"Delete a category, keeping its history."`
		Restore categories.CategoryRestoreCmd `cmd:"" help:"Restore a deleted category."`
	} `cmd:"" help:"Manage categories."`
	Settings struct {
		Set    settings.SettingsCmd       `cmd:"" help:"View or update settings." default:"withargs"`
		Export settings.SettingsExportCmd `cmd:"" help:"Export settings to a YAML file."`
		Import settings.SettingsImportCmd `cmd:"" help:"Import settings from a YAML file."`
	} `cmd:"" help:"Manage application settings."`
	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Snapshot the SQLite database." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List database snapshots."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Replace the database with a snapshot."`
	} `cmd:"" help:"Snapshot and restore the SQLite database."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Pomodoro timer with per-category focus tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ctx.Command()
	appCtx := &cli.Context{
		Session: CLI.Session,
		Bell:    os.Stdout,
	}

	// Keyring commands manage the credentials themselves and need no store
	if !strings.HasPrefix(command, "keyring") {
		store, configDir, err := openStore(CLI.Config)
		if err != nil {
			apperrors.Fatal(err)
		}
		appCtx.Store = store
		appCtx.ConfigDir = configDir
		defer store.Close()
	}

	logDir := appCtx.ConfigDir
	if logDir == "" {
		logDir = defaultConfigDir()
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, ConfigDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Init and doctor handle loading themselves
	if appCtx.Store != nil && !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") {
		if err := appCtx.Store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		// Fatal exits without running deferred calls
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		apperrors.Fatal(err)
	}
}

// openStore builds the storage provider for the --config value and returns
// the directory used for the session file and logs.
func openStore(config string) (storage.Provider, string, error) {
	if config == constants.KeyringConfigValue {
		connStr, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, "", err
		}
		// Credentials from the keyring or environment may carry a password
		return postgres.New(connStr), defaultConfigDir(), nil
	}

	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", apperrors.WithHint(err, fmt.Sprintf(
					"store it with 'pomolit keyring set' and pass --config keyring, set %s, or use a .pgpass file", constants.ConnectionEnvVar))
			}
			return nil, "", err
		}
		return postgres.New(config), defaultConfigDir(), nil
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Abs(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), constants.AppName)
	}
	return filepath.Join(dir, constants.AppName)
}
