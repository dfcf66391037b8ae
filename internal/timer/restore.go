package timer

import (
	"time"

	"github.com/julianstephens/pomolit/internal/session"
)

// restore rebuilds engine state from a persisted record. It reports false
// when the record cannot seed a session and the slot should be dropped.
func restore(rec *session.Record, now time.Time, d Durations) (State, bool) {
	if rec == nil {
		return State{}, false
	}

	mode := Mode(rec.Mode)
	phase := Phase(rec.Phase)
	if !mode.Valid() || phase == PhaseIdle {
		return State{}, false
	}

	remaining := rec.RemainingSeconds
	if target := d.Target(mode); remaining > target {
		remaining = target
	}

	state := State{
		Mode:                mode,
		Phase:               phase,
		RemainingSeconds:    remaining,
		SelectedCategoryID:  rec.SelectedCategoryID,
		CompletedFocusCount: rec.CompletedFocusCount,
	}

	switch phase {
	case PhasePaused:
		return state, true
	case PhaseRunning:
		state.RemainingSeconds = reconcile(rec, remaining, now)
		return state, true
	}
	return State{}, false
}

// reconcile subtracts the whole seconds that passed while nothing was
// ticking. A session that would have ended is left at one second so the
// next tick completes it exactly once.
func reconcile(rec *session.Record, remaining int, now time.Time) int {
	anchor, ok := session.Time(rec.SavedAt)
	if !ok {
		anchor, ok = session.Time(rec.RunningSince)
	}
	if !ok {
		return max(remaining, 1)
	}

	elapsed := int(now.Sub(anchor) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	adjusted := remaining - elapsed
	if adjusted <= 0 {
		return 1
	}
	return adjusted
}

// record converts engine state into its persisted form.
func record(s State, now time.Time) session.Record {
	rec := session.Record{
		RemainingSeconds:    s.RemainingSeconds,
		Phase:               string(s.Phase),
		Mode:                string(s.Mode),
		SelectedCategoryID:  s.SelectedCategoryID,
		CompletedFocusCount: s.CompletedFocusCount,
		SavedAt:             session.Millis(now),
	}
	if s.RunningSince != nil {
		rec.RunningSince = session.Millis(*s.RunningSince)
	}
	return rec
}
