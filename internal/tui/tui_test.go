package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pomolit/internal/cli"
	"github.com/julianstephens/pomolit/internal/storage/sqlite"
	"github.com/julianstephens/pomolit/internal/timer"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := sqliteStore(t)
	ctx := &cli.Context{Store: store, Session: cli.SessionBackendMemory}
	app, err := ctx.OpenApp()
	if err != nil {
		t.Fatalf("failed to open app: %v", err)
	}
	return NewModel(Deps{
		Engine:   app.Engine,
		Settings: app.Settings,
		Recorder: app.Recorder,
		Store:    store,
	})
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestSpaceTogglesSession(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, space)
	if m.timer.Phase != timer.PhaseRunning {
		t.Fatalf("expected running after space, got %s", m.timer.Phase)
	}
	if m.timer.SelectedCategoryID != m.categories[0].ID {
		t.Errorf("expected session credited to the first category")
	}

	m = press(t, m, space)
	if m.timer.Phase != timer.PhasePaused {
		t.Fatalf("expected paused after second space, got %s", m.timer.Phase)
	}

	m = press(t, m, space)
	if m.timer.Phase != timer.PhaseRunning {
		t.Fatalf("expected running after resume, got %s", m.timer.Phase)
	}

	m = press(t, m, runes("r"))
	if m.timer.Phase != timer.PhaseIdle {
		t.Errorf("expected idle after reset, got %s", m.timer.Phase)
	}
}

func TestModeKeysOnlyWhileIdle(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("3"))
	if m.timer.Mode != timer.ModeLongBreak {
		t.Fatalf("expected long break, got %s", m.timer.Mode)
	}
	if m.timer.RemainingSeconds != m.engine.Durations().Target(timer.ModeLongBreak) {
		t.Errorf("expected remaining to match the long break target, got %d", m.timer.RemainingSeconds)
	}

	m = press(t, m, runes("1"))
	m = press(t, m, space)
	m = press(t, m, runes("2"))
	if m.timer.Mode != timer.ModeFocus {
		t.Errorf("mode changed while running: %s", m.timer.Mode)
	}
}

func TestCategoryPicker(t *testing.T) {
	m := newTestModel(t)
	n := len(m.categories)
	if n < 2 {
		t.Fatalf("expected seeded categories, got %d", n)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.selected != n-1 {
		t.Errorf("left from the first category should wrap to %d, got %d", n-1, m.selected)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.selected != 0 {
		t.Errorf("right should wrap back to 0, got %d", m.selected)
	}

	m = press(t, m, space)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.selected != 0 {
		t.Errorf("picker moved while running: %d", m.selected)
	}
}

func TestTabCyclesViews(t *testing.T) {
	m := newTestModel(t)

	want := []SessionState{StateStats, StateCategories, StateTimer}
	for _, w := range want {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != w {
			t.Fatalf("expected state %d, got %d", w, m.state)
		}
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateCategories {
		t.Errorf("shift+tab from timer should select categories, got %d", m.state)
	}

	// Timer keys do nothing outside the timer view.
	m = press(t, m, space)
	if m.timer.Phase != timer.PhaseIdle {
		t.Errorf("space started a session from the categories view")
	}
}

func TestFormsOpenAndCancel(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("s"))
	if m.state != StateEditDurations || m.form == nil {
		t.Fatalf("expected durations form, got state %d", m.state)
	}
	if m.durationsForm.Focus != "25" {
		t.Errorf("expected form prefilled with focus 25, got %q", m.durationsForm.Focus)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateTimer {
		t.Fatalf("esc should return to the timer, got %d", m.state)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("a"))
	if m.state != StateAddCategory {
		t.Fatalf("expected add category form, got %d", m.state)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateCategories {
		t.Errorf("esc should return to categories, got %d", m.state)
	}
}

func TestEngineEventsUpdateModel(t *testing.T) {
	m := newTestModel(t)

	completed := timer.DefaultState(m.engine.Durations())
	completed.Mode = timer.ModeShortBreak
	completed.CompletedFocusCount = 1

	updated, cmd := m.Update(EngineEventMsg(timer.Event{
		Type:      timer.EventCompleted,
		State:     completed,
		Completed: timer.ModeFocus,
	}))
	m = updated.(Model)
	if m.timer.Mode != timer.ModeShortBreak || m.timer.CompletedFocusCount != 1 {
		t.Errorf("model did not take the event state: %+v", m.timer)
	}
	if cmd == nil {
		t.Error("expected follow-up commands after an engine event")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(runes("q"))
	m = updated.(Model)
	if !m.quitting || cmd == nil {
		t.Error("expected q to quit")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestViewRendersEachState(t *testing.T) {
	m := newTestModel(t)
	for _, s := range mainViews {
		m.state = s
		if m.View() == "" {
			t.Errorf("state %d rendered nothing", s)
		}
	}
}

func TestRenderBar(t *testing.T) {
	for _, p := range []float64{-1, 0, 0.5, 1, 2} {
		if got := renderBar(p, 10); got == "" {
			t.Errorf("renderBar(%v) rendered nothing", p)
		}
	}
}

func TestCycleView(t *testing.T) {
	if got := cycleView(StateTimer, -1); got != StateCategories {
		t.Errorf("cycleView(timer, -1) = %d", got)
	}
	if got := cycleView(StateEditDurations, 1); got != StateTimer {
		t.Errorf("cycleView from a form state should fall back to the timer, got %d", got)
	}
}

func sqliteStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
