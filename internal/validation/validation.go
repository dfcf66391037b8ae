package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/pomolit/internal/constants"
	"github.com/julianstephens/pomolit/internal/models"
)

var (
	// ErrInvalidDuration is returned for a duration outside [MinDuration, MaxDuration].
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidCategory is returned for an unusable category name or color.
	ErrInvalidCategory = errors.New("invalid category")
)

// MaxCategoryNameLength bounds category names so they fit the timer view.
const MaxCategoryNameLength = 40

// ProblemType identifies what a Problem is about
type ProblemType string

const (
	ProblemDuration  ProblemType = "duration"
	ProblemDailyGoal ProblemType = "daily_goal"
	ProblemCategory  ProblemType = "category"
)

// Problem is one invalid value found in settings or categories
type Problem struct {
	Type        ProblemType
	Field       string
	Description string
}

// Result collects every problem found in one validation pass
type Result struct {
	Problems []Problem
}

// HasProblems reports whether anything was invalid
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// FormatReport returns a human-readable list of problems
func (r *Result) FormatReport() string {
	if !r.HasProblems() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "- %s\n", p.Description)
	}
	return b.String()
}

// Err returns nil when there are no problems, otherwise an error wrapping
// the sentinel of the first problem.
func (r *Result) Err() error {
	if !r.HasProblems() {
		return nil
	}
	first := r.Problems[0]
	sentinel := ErrInvalidDuration
	if first.Type == ProblemCategory {
		sentinel = ErrInvalidCategory
	}
	return fmt.Errorf("%w: %s", sentinel, first.Description)
}

// ValidateDuration checks a duration in minutes for the named field.
func ValidateDuration(field string, minutes int) error {
	if minutes < constants.MinDuration || minutes > constants.MaxDuration {
		return fmt.Errorf("%w: %s must be between %d and %d minutes, got %d",
			ErrInvalidDuration, field, constants.MinDuration, constants.MaxDuration, minutes)
	}
	return nil
}

// ValidateSettings checks every user-editable setting.
func ValidateSettings(s models.Settings) *Result {
	result := &Result{}

	durations := []struct {
		field   string
		minutes int
	}{
		{constants.SettingFocusMinutes, s.FocusMinutes},
		{constants.SettingShortBreakMinutes, s.ShortBreakMinutes},
		{constants.SettingLongBreakMinutes, s.LongBreakMinutes},
	}
	for _, d := range durations {
		if d.minutes < constants.MinDuration || d.minutes > constants.MaxDuration {
			result.Problems = append(result.Problems, Problem{
				Type:  ProblemDuration,
				Field: d.field,
				Description: fmt.Sprintf("%s must be between %d and %d minutes, got %d",
					d.field, constants.MinDuration, constants.MaxDuration, d.minutes),
			})
		}
	}

	if s.DailyGoal < 0 {
		result.Problems = append(result.Problems, Problem{
			Type:        ProblemDailyGoal,
			Field:       constants.SettingDailyGoal,
			Description: fmt.Sprintf("%s cannot be negative, got %d", constants.SettingDailyGoal, s.DailyGoal),
		})
	}

	return result
}

// ValidateCategory checks a category's name and color key.
func ValidateCategory(c models.Category) *Result {
	result := &Result{}
	name := strings.TrimSpace(c.Name)

	switch {
	case name == "":
		result.Problems = append(result.Problems, Problem{
			Type: ProblemCategory, Field: "name", Description: "category name cannot be empty",
		})
	case len([]rune(name)) > MaxCategoryNameLength:
		result.Problems = append(result.Problems, Problem{
			Type: ProblemCategory, Field: "name",
			Description: fmt.Sprintf("category name must be at most %d characters", MaxCategoryNameLength),
		})
	}

	if !models.ValidColorKey(c.ColorKey) {
		result.Problems = append(result.Problems, Problem{
			Type: ProblemCategory, Field: "color_key",
			Description: fmt.Sprintf("unknown color %q (choose one of %s)", c.ColorKey, strings.Join(constants.ColorKeys, ", ")),
		})
	}

	if c.TargetMinutes < 0 {
		result.Problems = append(result.Problems, Problem{
			Type: ProblemCategory, Field: "target_minutes", Description: "target minutes cannot be negative",
		})
	}

	return result
}
