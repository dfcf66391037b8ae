package timer

import (
	"time"

	"github.com/julianstephens/pomolit/internal/constants"
)

// Action is a command or clock event applied to a State by Reduce.
type Action interface {
	isAction()
}

// StartAction begins a session in the current mode for a category.
type StartAction struct {
	CategoryID string
	At         time.Time
}

// PauseAction freezes a running session.
type PauseAction struct{}

// ResumeAction continues a paused session.
type ResumeAction struct {
	At time.Time
}

// ResetAction returns to the default state.
type ResetAction struct{}

// SwitchModeAction selects a different mode while idle.
type SwitchModeAction struct {
	Mode Mode
}

// TickAction advances a running session by one second.
type TickAction struct {
	At time.Time
}

// DurationsChangedAction reports that the durations configuration changed.
type DurationsChangedAction struct{}

func (StartAction) isAction()            {}
func (PauseAction) isAction()            {}
func (ResumeAction) isAction()           {}
func (ResetAction) isAction()            {}
func (SwitchModeAction) isAction()       {}
func (TickAction) isAction()             {}
func (DurationsChangedAction) isAction() {}

// Effects lists what the engine must do after a transition.
type Effects struct {
	// Applied is false when the action was ignored for the current phase.
	Applied        bool
	Persist        bool
	Clear          bool
	SessionStarted bool
	FocusCompleted bool
	// CategoryID is the category of the completed focus session.
	CategoryID     string
	TimerCompleted bool
	// CompletedMode is the mode of the session that just finished.
	CompletedMode Mode
}

// Reduce applies action to s. Actions that are invalid for the current
// phase return s unchanged with zero Effects.
func Reduce(s State, action Action, d Durations) (State, Effects) {
	s = s.Clone()

	switch a := action.(type) {
	case StartAction:
		if s.Phase != PhaseIdle || a.CategoryID == "" {
			return s, Effects{}
		}
		at := a.At
		s.Phase = PhaseRunning
		s.SelectedCategoryID = a.CategoryID
		s.RemainingSeconds = d.Target(s.Mode)
		s.RunningSince = &at
		return s, Effects{Applied: true, Persist: true, SessionStarted: true}

	case PauseAction:
		if s.Phase != PhaseRunning {
			return s, Effects{}
		}
		s.Phase = PhasePaused
		s.RunningSince = nil
		return s, Effects{Applied: true, Persist: true}

	case ResumeAction:
		if s.Phase != PhasePaused {
			return s, Effects{}
		}
		s.Phase = PhaseRunning
		s.RunningSince = anchor(a.At, d.Target(s.Mode), s.RemainingSeconds)
		return s, Effects{Applied: true, Persist: true}

	case ResetAction:
		return DefaultState(d), Effects{Applied: true, Clear: true}

	case SwitchModeAction:
		if s.Phase != PhaseIdle || !a.Mode.Valid() {
			return s, Effects{}
		}
		s.Mode = a.Mode
		s.RemainingSeconds = d.Target(a.Mode)
		return s, Effects{Applied: true, Clear: true}

	case TickAction:
		if s.Phase != PhaseRunning {
			return s, Effects{}
		}
		if s.RemainingSeconds > 1 {
			s.RemainingSeconds--
			if s.RunningSince == nil {
				s.RunningSince = anchor(a.At, d.Target(s.Mode), s.RemainingSeconds)
			}
			return s, Effects{Applied: true, Persist: true}
		}
		return complete(s, d)

	case DurationsChangedAction:
		if s.Phase != PhaseIdle {
			return s, Effects{}
		}
		s.RemainingSeconds = d.Target(s.Mode)
		return s, Effects{Applied: true}
	}

	return s, Effects{}
}

// complete finishes the running session and selects the next mode. Breaks
// are never started automatically.
func complete(s State, d Durations) (State, Effects) {
	effects := Effects{
		Applied:        true,
		Clear:          true,
		TimerCompleted: true,
		CompletedMode:  s.Mode,
	}

	if s.Mode == ModeFocus {
		effects.FocusCompleted = true
		effects.CategoryID = s.SelectedCategoryID
		s.CompletedFocusCount++
		s.Mode = NextBreak(s.CompletedFocusCount)
	} else {
		s.Mode = ModeFocus
	}

	s.Phase = PhaseIdle
	s.RemainingSeconds = d.Target(s.Mode)
	s.RunningSince = nil
	return s, effects
}

// NextBreak returns the break that follows the count-th completed focus
// session.
func NextBreak(count int) Mode {
	if count > 0 && count%constants.LongBreakInterval == 0 {
		return ModeLongBreak
	}
	return ModeShortBreak
}

// anchor back-dates the running start so that now minus the anchor equals
// the time already spent in the session.
func anchor(now time.Time, target, remaining int) *time.Time {
	spent := target - remaining
	if spent < 0 {
		spent = 0
	}
	t := now.Add(-time.Duration(spent) * time.Second)
	return &t
}
