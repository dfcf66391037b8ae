// Package settings keeps the user's preferences in memory, validated and in
// sync with the database, and exposes the timer durations to the engine.
package settings

import (
	"fmt"
	"sync"

	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/timer"
	"github.com/julianstephens/pomolit/internal/validation"
)

// Store is the persistence the live settings read from and write to.
type Store interface {
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// Live is the in-memory copy of the settings table. It implements
// timer.DurationProvider.
type Live struct {
	mu        sync.RWMutex
	store     Store
	current   models.Settings
	listeners []func(models.Settings)
}

var _ timer.DurationProvider = (*Live)(nil)

// Load reads the settings from store. Stored values that fail validation
// are rejected so the engine never sees them.
func Load(store Store) (*Live, error) {
	current, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := validation.ValidateSettings(current).Err(); err != nil {
		return nil, fmt.Errorf("stored settings are invalid: %w", err)
	}
	return &Live{store: store, current: current}, nil
}

// Settings returns the current settings.
func (l *Live) Settings() models.Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Durations returns the timer durations.
func (l *Live) Durations() timer.Durations {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return DurationsOf(l.current)
}

// OnChange registers fn to run after every successful Update.
func (l *Live) OnChange(fn func(models.Settings)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// Update applies fn to a copy of the settings, validates and saves the
// result, then notifies listeners. Nothing changes if validation or the
// save fails.
func (l *Live) Update(fn func(*models.Settings)) error {
	l.mu.Lock()
	next := l.current
	fn(&next)

	if err := validation.ValidateSettings(next).Err(); err != nil {
		l.mu.Unlock()
		return err
	}
	if err := l.store.SaveSettings(next); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("failed to save settings: %w", err)
	}

	l.current = next
	listeners := append(([]func(models.Settings))(nil), l.listeners...)
	l.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
	return nil
}

// Replace swaps in a complete settings value, as for an import.
func (l *Live) Replace(s models.Settings) error {
	return l.Update(func(current *models.Settings) {
		*current = s
	})
}

// DurationsOf extracts the timer durations from settings.
func DurationsOf(s models.Settings) timer.Durations {
	return timer.Durations{
		Focus:      s.FocusMinutes,
		ShortBreak: s.ShortBreakMinutes,
		LongBreak:  s.LongBreakMinutes,
	}
}
