package settings

import (
	"fmt"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/models"
	livesettings "github.com/julianstephens/pomolit/internal/settings"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Focus         *int  `help:"Focus session length in minutes (1-90)."`
	ShortBreak    *int  `help:"Short break length in minutes (1-90)."`
	LongBreak     *int  `help:"Long break length in minutes (1-90)."`
	Notifications *bool `help:"Enable or disable tray notifications." negatable:""`
	Bell          *bool `help:"Enable or disable the terminal bell." negatable:""`
	DailyGoal     *int  `help:"Target pomodoros per day."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	live, err := livesettings.Load(ctx.Store)
	if err != nil {
		return err
	}

	if c.List {
		printSettings(live.Settings())
		return nil
	}

	updated := false
	err = live.Update(func(s *models.Settings) {
		if c.Focus != nil {
			s.FocusMinutes = *c.Focus
			updated = true
		}
		if c.ShortBreak != nil {
			s.ShortBreakMinutes = *c.ShortBreak
			updated = true
		}
		if c.LongBreak != nil {
			s.LongBreakMinutes = *c.LongBreak
			updated = true
		}
		if c.Notifications != nil {
			s.NotificationsEnabled = *c.Notifications
			updated = true
		}
		if c.Bell != nil {
			s.BellEnabled = *c.Bell
			updated = true
		}
		if c.DailyGoal != nil {
			s.DailyGoal = *c.DailyGoal
			updated = true
		}
	})
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	if updated {
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}

func printSettings(s models.Settings) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Focus:                 %d min\n", s.FocusMinutes)
	fmt.Printf("  Short Break:           %d min\n", s.ShortBreakMinutes)
	fmt.Printf("  Long Break:            %d min\n", s.LongBreakMinutes)
	fmt.Printf("  Daily Goal:            %d pomodoros\n", s.DailyGoal)
	fmt.Println("\nNotification Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
	fmt.Printf("  Bell Enabled:          %v\n", s.BellEnabled)
}

type SettingsExportCmd struct {
	File string `short:"f" required:"" help:"YAML file to write." type:"path"`
}

func (c *SettingsExportCmd) Run(ctx *cli.Context) error {
	live, err := livesettings.Load(ctx.Store)
	if err != nil {
		return err
	}
	if err := livesettings.ExportFile(c.File, live.Settings()); err != nil {
		return err
	}
	fmt.Printf("Exported settings to %s\n", c.File)
	return nil
}

type SettingsImportCmd struct {
	File string `short:"f" required:"" help:"YAML file to read. Keys missing from the file keep their current value." type:"existingfile"`
}

func (c *SettingsImportCmd) Run(ctx *cli.Context) error {
	live, err := livesettings.Load(ctx.Store)
	if err != nil {
		return err
	}

	imported, err := livesettings.ImportFile(c.File, live.Settings())
	if err != nil {
		return err
	}
	if err := live.Replace(imported); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}

	fmt.Printf("Imported settings from %s\n", c.File)
	printSettings(live.Settings())
	return nil
}
