package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pomolit/internal/constants"
)

// FocusEntry records one completed focus session
type FocusEntry struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Day         string    `json:"day"` // YYYY-MM-DD format, local time
	Minutes     int       `json:"minutes"`
	CompletedAt time.Time `json:"completed_at"`
}

// DayData aggregates the focus entries of one category on one day
type DayData struct {
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	Pomodoros int    `json:"pomodoros"`
}

// DaySummary aggregates every category on one day
type DaySummary struct {
	Date           string `json:"date"`
	TotalMinutes   int    `json:"total_minutes"`
	TotalPomodoros int    `json:"total_pomodoros"`
}

// NewFocusEntry builds an entry for a session completed at the given time.
// Day is taken from the local calendar date of completedAt.
func NewFocusEntry(categoryID string, minutes int, completedAt time.Time) FocusEntry {
	return FocusEntry{
		ID:          uuid.New().String(),
		CategoryID:  categoryID,
		Day:         completedAt.Local().Format(constants.DateFormat),
		Minutes:     minutes,
		CompletedAt: completedAt.UTC().Truncate(time.Second),
	}
}
