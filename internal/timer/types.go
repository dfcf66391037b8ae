// Package timer implements the Pomodoro timer state machine.
//
// The transition table lives in Reduce, a pure function over tagged Action
// values. Engine owns the authoritative State, drives the one-second
// countdown, reconciles wall-clock time against the persisted session on
// Init, and turns reducer Effects into store writes and notifications.
package timer

import (
	"time"

	"github.com/julianstephens/pomolit/internal/constants"
	"github.com/julianstephens/pomolit/internal/session"
)

// Mode selects which interval is being timed.
type Mode string

const (
	ModeFocus      Mode = session.ModeFocus
	ModeShortBreak Mode = session.ModeShortBreak
	ModeLongBreak  Mode = session.ModeLongBreak
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// Label returns the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// Phase is the run state of the countdown.
type Phase string

const (
	PhaseIdle    Phase = session.PhaseIdle
	PhaseRunning Phase = session.PhaseRunning
	PhasePaused  Phase = session.PhasePaused
)

// Durations holds the configured interval lengths in minutes. Values are
// validated before they reach the engine.
type Durations struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

// DefaultDurations returns the stock 25/5/15 configuration.
func DefaultDurations() Durations {
	return Durations{
		Focus:      constants.DefaultFocusMinutes,
		ShortBreak: constants.DefaultShortBreakMinutes,
		LongBreak:  constants.DefaultLongBreakMinutes,
	}
}

// Target returns the full length of mode m in seconds.
func (d Durations) Target(m Mode) int {
	switch m {
	case ModeShortBreak:
		return d.ShortBreak * 60
	case ModeLongBreak:
		return d.LongBreak * 60
	default:
		return d.Focus * 60
	}
}

// DurationProvider supplies the live durations configuration. It may
// return a different value on every call.
type DurationProvider interface {
	Durations() Durations
}

// StaticDurations is a DurationProvider that never changes.
type StaticDurations Durations

func (s StaticDurations) Durations() Durations {
	return Durations(s)
}

// State is the authoritative timer record.
type State struct {
	Mode                Mode
	Phase               Phase
	RemainingSeconds    int
	SelectedCategoryID  string
	CompletedFocusCount int
	// RunningSince is the instant the current running phase began. It is
	// nil whenever the timer is not running, and briefly after a running
	// session is restored until the next tick re-anchors it.
	RunningSince *time.Time
}

// DefaultState is the idle focus state with a full focus duration.
func DefaultState(d Durations) State {
	return State{
		Mode:             ModeFocus,
		Phase:            PhaseIdle,
		RemainingSeconds: d.Target(ModeFocus),
	}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	if s.RunningSince != nil {
		t := *s.RunningSince
		s.RunningSince = &t
	}
	return s
}

// Equal compares two states, including the RunningSince instant.
func (s State) Equal(o State) bool {
	if s.Mode != o.Mode || s.Phase != o.Phase || s.RemainingSeconds != o.RemainingSeconds ||
		s.SelectedCategoryID != o.SelectedCategoryID || s.CompletedFocusCount != o.CompletedFocusCount {
		return false
	}
	if (s.RunningSince == nil) != (o.RunningSince == nil) {
		return false
	}
	return s.RunningSince == nil || s.RunningSince.Equal(*o.RunningSince)
}
