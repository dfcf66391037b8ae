package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pomolit/internal/constants"
)

// Category is a project that focus sessions are attributed to
type Category struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ColorKey      string     `json:"color_key"`
	TargetMinutes int        `json:"target_minutes"` // optional daily target, 0 for none
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// NewCategory builds a category with a fresh ID.
func NewCategory(name, colorKey string) Category {
	return Category{
		ID:        uuid.New().String(),
		Name:      name,
		ColorKey:  colorKey,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// NextColorKey returns the palette color for the n-th category.
func NextColorKey(n int) string {
	if n < 0 {
		n = 0
	}
	return constants.ColorKeys[n%len(constants.ColorKeys)]
}

// ValidColorKey reports whether key is part of the palette.
func ValidColorKey(key string) bool {
	for _, k := range constants.ColorKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DefaultCategoryNames are seeded by init.
var DefaultCategoryNames = []string{"Study", "Work", "Exercise", "Reading"}
