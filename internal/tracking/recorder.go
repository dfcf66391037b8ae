// Package tracking records completed focus sessions per category and
// summarizes them by day.
package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pomolit/internal/constants"
	apperrors "github.com/julianstephens/pomolit/internal/errors"
	"github.com/julianstephens/pomolit/internal/logger"
	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/timer"
)

// Store is the focus log.
type Store interface {
	AddFocusEntry(models.FocusEntry) error
	GetDaySummary(day string) (models.DaySummary, error)
	GetCategoryDays(categoryID, startDay, endDay string) ([]models.DayData, error)
	GetAllCategoriesIncludingDeleted() ([]models.Category, error)
}

// Recorder appends focus entries and answers day statistics.
type Recorder struct {
	store     Store
	durations timer.DurationProvider
	now       func() time.Time
}

func NewRecorder(store Store, durations timer.DurationProvider) *Recorder {
	return &Recorder{
		store:     store,
		durations: durations,
		now:       time.Now,
	}
}

// FocusCompleted logs one pomodoro for categoryID, credited with the
// configured focus length. It is the engine's focus-completion callback,
// so failures are logged rather than returned.
func (r *Recorder) FocusCompleted(categoryID string) {
	if categoryID == "" {
		logger.Warn("focus session completed without a category, not recorded")
		return
	}

	entry := models.NewFocusEntry(categoryID, r.durations.Durations().Focus, r.now())
	if apperrors.BestEffort("record focus session", r.store.AddFocusEntry(entry), "category", categoryID) {
		return
	}
	logger.Info("focus session recorded", "category", categoryID, "minutes", entry.Minutes, "day", entry.Day)
}

// Today returns the summary for the current local day.
func (r *Recorder) Today() (models.DaySummary, error) {
	return r.store.GetDaySummary(r.today())
}

// TodayCount is the number of pomodoros completed today, zero if the store
// cannot be read.
func (r *Recorder) TodayCount() int {
	summary, err := r.Today()
	if apperrors.BestEffort("read today's focus count", err) {
		return 0
	}
	return summary.TotalPomodoros
}

func (r *Recorder) today() string {
	return r.now().Local().Format(constants.DateFormat)
}

// CategoryHistory is one category's per-day totals over a window.
type CategoryHistory struct {
	Category       models.Category
	Days           []models.DayData // one per day, oldest first
	TotalMinutes   int
	TotalPomodoros int
}

// History returns the last n days, today included, for every active
// category and every deleted category that still has entries in the window.
func (r *Recorder) History(n int) ([]CategoryHistory, error) {
	if n < 1 {
		return nil, fmt.Errorf("history window must be at least 1 day, got %d", n)
	}

	dates := r.window(n)
	start, end := dates[0], dates[len(dates)-1]

	categories, err := r.store.GetAllCategoriesIncludingDeleted()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var history []CategoryHistory
	for _, c := range categories {
		days, err := r.store.GetCategoryDays(c.ID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to read history for %s: %w", c.Name, err)
		}

		h := CategoryHistory{Category: c, Days: fill(dates, days)}
		for _, d := range h.Days {
			h.TotalMinutes += d.Minutes
			h.TotalPomodoros += d.Pomodoros
		}
		if c.DeletedAt != nil && h.TotalPomodoros == 0 {
			continue
		}
		history = append(history, h)
	}
	return history, nil
}

// window lists the n local dates ending today, oldest first.
func (r *Recorder) window(n int) []string {
	today := r.now().Local()
	dates := make([]string, n)
	for i := 0; i < n; i++ {
		dates[i] = today.AddDate(0, 0, i-(n-1)).Format(constants.DateFormat)
	}
	return dates
}

// fill returns one DayData per date, zero where the store had no row.
func fill(dates []string, days []models.DayData) []models.DayData {
	byDate := make(map[string]models.DayData, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	out := make([]models.DayData, len(dates))
	for i, date := range dates {
		d, ok := byDate[date]
		if !ok {
			d = models.DayData{Date: date}
		}
		out[i] = d
	}
	return out
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders one rune per day scaled to the busiest day. Days
// without focus time render as a space.
func Sparkline(days []models.DayData) string {
	peak := 0
	for _, d := range days {
		if d.Minutes > peak {
			peak = d.Minutes
		}
	}

	var b strings.Builder
	for _, d := range days {
		if d.Minutes == 0 || peak == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(sparks[(d.Minutes*len(sparks)-1)/peak])
	}
	return b.String()
}
