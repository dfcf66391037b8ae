package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/pomolit/internal/models"
)

// yamlSettings uses pointers so keys absent from an imported file keep
// their current value.
type yamlSettings struct {
	FocusMinutes         *int  `yaml:"focus_minutes,omitempty"`
	ShortBreakMinutes    *int  `yaml:"short_break_minutes,omitempty"`
	LongBreakMinutes     *int  `yaml:"long_break_minutes,omitempty"`
	NotificationsEnabled *bool `yaml:"notifications_enabled,omitempty"`
	BellEnabled          *bool `yaml:"bell_enabled,omitempty"`
	DailyGoal            *int  `yaml:"daily_goal,omitempty"`
}

// ExportFile writes settings to a YAML file.
func ExportFile(path string, s models.Settings) error {
	serialized, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// ImportFile reads a YAML file and overlays it on base. The result is not
// validated; callers pass it through Live.Replace.
func ImportFile(path string, base models.Settings) (models.Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, fmt.Errorf("settings file %s does not exist", path)
		}
		return base, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return base, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&base, fileData)
	return base, nil
}

func applyYamlSettings(s *models.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes != nil {
		s.FocusMinutes = *fileData.FocusMinutes
	}
	if fileData.ShortBreakMinutes != nil {
		s.ShortBreakMinutes = *fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes != nil {
		s.LongBreakMinutes = *fileData.LongBreakMinutes
	}
	if fileData.NotificationsEnabled != nil {
		s.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.BellEnabled != nil {
		s.BellEnabled = *fileData.BellEnabled
	}
	if fileData.DailyGoal != nil {
		s.DailyGoal = *fileData.DailyGoal
	}
}
