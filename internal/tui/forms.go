package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pomolit/internal/constants"
	"github.com/julianstephens/pomolit/internal/validation"
)

func NewDurationsForm(fm *DurationsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus (minutes)").
				Value(&fm.Focus).
				Validate(durationValidator(constants.SettingFocusMinutes)),
			huh.NewInput().
				Title("Short Break (minutes)").
				Value(&fm.ShortBreak).
				Validate(durationValidator(constants.SettingShortBreakMinutes)),
			huh.NewInput().
				Title("Long Break (minutes)").
				Description("Taken after every fourth focus session").
				Value(&fm.LongBreak).
				Validate(durationValidator(constants.SettingLongBreakMinutes)),
			huh.NewInput().
				Title("Daily Goal (pomodoros)").
				Value(&fm.DailyGoal).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if i < 0 {
						return fmt.Errorf("cannot be negative")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Tray Notifications").
				Value(&fm.Notifications),
			huh.NewConfirm().
				Title("Terminal Bell").
				Value(&fm.Bell),
		),
	)
}

func durationValidator(field string) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		return validation.ValidateDuration(field, i)
	}
}

func NewCategoryForm(fm *CategoryFormModel) *huh.Form {
	options := make([]huh.Option[string], 0, len(constants.ColorKeys))
	for _, k := range constants.ColorKeys {
		options = append(options, huh.NewOption(categoryStyle(k).Render("● ")+k, k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					name := strings.TrimSpace(s)
					if name == "" {
						return errors.New("name cannot be empty")
					}
					if len([]rune(name)) > validation.MaxCategoryNameLength {
						return fmt.Errorf("at most %d characters", validation.MaxCategoryNameLength)
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(options...).
				Value(&fm.Color),
		),
	)
}
