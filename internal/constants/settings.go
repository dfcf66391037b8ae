package constants

const (
	// Duration bounds accepted at the settings boundary, in minutes
	MinDuration = 1
	MaxDuration = 90

	// Setting keys
	SettingFocusMinutes         = "focus_minutes"
	SettingShortBreakMinutes    = "short_break_minutes"
	SettingLongBreakMinutes     = "long_break_minutes"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingBellEnabled          = "bell_enabled"
	SettingDailyGoal            = "daily_goal"

	// Default Settings Values
	DefaultFocusMinutes         = 25
	DefaultShortBreakMinutes    = 5
	DefaultLongBreakMinutes     = 15
	DefaultNotificationsEnabled = true
	DefaultBellEnabled          = true
	DefaultDailyGoal            = 8
)

// ColorKeys is the palette categories cycle through, in assignment order.
var ColorKeys = []string{
	"emerald",
	"blue",
	"purple",
	"amber",
	"red",
	"teal",
	"pink",
	"indigo",
	"lime",
	"orange",
}
