package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/pomolit/internal/constants"
)

// Settings represents user preferences stored in the settings table
type Settings struct {
	FocusMinutes         int  `json:"focus_minutes" yaml:"focus_minutes"`                 // length of a focus session
	ShortBreakMinutes    int  `json:"short_break_minutes" yaml:"short_break_minutes"`     // length of a short break
	LongBreakMinutes     int  `json:"long_break_minutes" yaml:"long_break_minutes"`       // length of the break after every fourth focus session
	NotificationsEnabled bool `json:"notifications_enabled" yaml:"notifications_enabled"` // whether completion is sent to the tray app
	BellEnabled          bool `json:"bell_enabled" yaml:"bell_enabled"`                   // whether completion rings the terminal bell
	DailyGoal            int  `json:"daily_goal" yaml:"daily_goal"`                       // target pomodoros per day, shown in stats
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:         constants.DefaultFocusMinutes,
		ShortBreakMinutes:    constants.DefaultShortBreakMinutes,
		LongBreakMinutes:     constants.DefaultLongBreakMinutes,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		BellEnabled:          constants.DefaultBellEnabled,
		DailyGoal:            constants.DefaultDailyGoal,
	}
}

// MapToSettings converts settings table rows to a Settings struct. Keys
// missing from data keep their default value; unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingFocusMinutes:
			settings.FocusMinutes, err = strconv.Atoi(value)
		case constants.SettingShortBreakMinutes:
			settings.ShortBreakMinutes, err = strconv.Atoi(value)
		case constants.SettingLongBreakMinutes:
			settings.LongBreakMinutes, err = strconv.Atoi(value)
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingBellEnabled:
			settings.BellEnabled = value == "true"
		case constants.SettingDailyGoal:
			settings.DailyGoal, err = strconv.Atoi(value)
		}
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}

	return settings, nil
}

// SettingsToMap converts a Settings struct to settings table rows.
func SettingsToMap(s Settings) map[string]string {
	return map[string]string{
		constants.SettingFocusMinutes:         strconv.Itoa(s.FocusMinutes),
		constants.SettingShortBreakMinutes:    strconv.Itoa(s.ShortBreakMinutes),
		constants.SettingLongBreakMinutes:     strconv.Itoa(s.LongBreakMinutes),
		constants.SettingNotificationsEnabled: strconv.FormatBool(s.NotificationsEnabled),
		constants.SettingBellEnabled:          strconv.FormatBool(s.BellEnabled),
		constants.SettingDailyGoal:            strconv.Itoa(s.DailyGoal),
	}
}
