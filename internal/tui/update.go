package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/timer"
)

// EngineEventMsg carries an engine event into the program loop.
type EngineEventMsg timer.Event

// engineClosedMsg is sent once the engine's event channel is closed.
type engineClosedMsg struct{}

// statsRefreshMsg asks the model to reload the focus log.
type statsRefreshMsg struct{}

func waitForEvent(events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return engineClosedMsg{}
		}
		return EngineEventMsg(event)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Engine traffic is handled in every state, forms included.
	switch msg := msg.(type) {
	case EngineEventMsg:
		return m.handleEngineEvent(timer.Event(msg))
	case engineClosedMsg:
		return m, nil
	case statsRefreshMsg:
		m.loadStats()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	switch m.state {
	case StateEditDurations:
		return m.updateDurationsForm(msg)
	case StateAddCategory:
		return m.updateCategoryForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleEngineEvent(event timer.Event) (tea.Model, tea.Cmd) {
	m.timer = event.State
	cmds := []tea.Cmd{waitForEvent(m.events), tea.SetWindowTitle(m.title())}
	if event.Type == timer.EventCompleted {
		// The focus log is written by the completion callback, which runs
		// after this event is emitted; reload on the next loop turn.
		cmds = append(cmds, func() tea.Msg { return statsRefreshMsg{} })
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// The session stays persisted; the next launch reconciles it.
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = cycleView(m.state, 1)
		if m.state == StateStats {
			m.loadStats()
		}
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = cycleView(m.state, -1)
		if m.state == StateStats {
			m.loadStats()
		}
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		return m.openDurationsForm()
	case key.Matches(msg, m.keys.Add):
		return m.openCategoryForm()
	}

	if m.state != StateTimer {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Reset):
		if m.timer.Phase != timer.PhaseIdle {
			m.engine.Reset()
		}
	case key.Matches(msg, m.keys.Focus):
		m.engine.SwitchMode(timer.ModeFocus)
	case key.Matches(msg, m.keys.Short):
		m.engine.SwitchMode(timer.ModeShortBreak)
	case key.Matches(msg, m.keys.Long):
		m.engine.SwitchMode(timer.ModeLongBreak)
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	default:
		return m, nil
	}

	m.timer = m.engine.State()
	return m, tea.SetWindowTitle(m.title())
}

// toggle starts, pauses or resumes depending on the phase.
func (m *Model) toggle() {
	switch m.timer.Phase {
	case timer.PhaseIdle:
		if c, ok := m.selectedCategory(); ok {
			m.engine.Start(c.ID)
		}
	case timer.PhaseRunning:
		m.engine.Pause()
	case timer.PhasePaused:
		m.engine.Resume()
	}
}

// moveSelection changes the category picker. The category of a session in
// progress is fixed.
func (m *Model) moveSelection(delta int) {
	if m.timer.Phase != timer.PhaseIdle || len(m.categories) == 0 {
		return
	}
	n := len(m.categories)
	m.selected = ((m.selected+delta)%n + n) % n
}

func cycleView(current SessionState, delta int) SessionState {
	for i, v := range mainViews {
		if v == current {
			n := len(mainViews)
			return mainViews[((i+delta)%n+n)%n]
		}
	}
	return StateTimer
}

func (m Model) openDurationsForm() (tea.Model, tea.Cmd) {
	s := m.settings.Settings()
	m.durationsForm = &DurationsFormModel{
		Focus:         strconv.Itoa(s.FocusMinutes),
		ShortBreak:    strconv.Itoa(s.ShortBreakMinutes),
		LongBreak:     strconv.Itoa(s.LongBreakMinutes),
		DailyGoal:     strconv.Itoa(s.DailyGoal),
		Notifications: s.NotificationsEnabled,
		Bell:          s.BellEnabled,
	}
	m.form = NewDurationsForm(m.durationsForm)
	m.formError = ""
	m.previousState = m.state
	m.state = StateEditDurations
	return m, m.form.Init()
}

func (m Model) openCategoryForm() (tea.Model, tea.Cmd) {
	m.categoryForm = &CategoryFormModel{
		Color: models.NextColorKey(len(m.categories)),
	}
	m.form = NewCategoryForm(m.categoryForm)
	m.formError = ""
	m.previousState = m.state
	m.state = StateAddCategory
	return m, m.form.Init()
}

// updateForm forwards msg to the open form. done reports whether the form
// was completed; aborted forms return to the previous view.
func (m *Model) updateForm(msg tea.Msg) (done bool, cmd tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		return false, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return true, cmd
	case huh.StateAborted:
		m.formError = ""
		m.state = m.previousState
	}
	return false, cmd
}

func (m Model) updateDurationsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	fm := m.durationsForm
	err := m.settings.Update(func(s *models.Settings) {
		// Inputs are validated by the form; Update validates them again.
		s.FocusMinutes, _ = strconv.Atoi(fm.Focus)
		s.ShortBreakMinutes, _ = strconv.Atoi(fm.ShortBreak)
		s.LongBreakMinutes, _ = strconv.Atoi(fm.LongBreak)
		s.DailyGoal, _ = strconv.Atoi(fm.DailyGoal)
		s.NotificationsEnabled = fm.Notifications
		s.BellEnabled = fm.Bell
	})
	if err != nil {
		// Stay in the form so the user can correct the values
		m.formError = "Failed to update settings: " + err.Error()
		m.form.State = huh.StateNormal
		return m, cmd
	}

	m.formError = ""
	m.state = m.previousState
	m.timer = m.engine.State()
	return m, tea.Batch(cmd, tea.SetWindowTitle(m.title()))
}

func (m Model) updateCategoryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	category := models.NewCategory(strings.TrimSpace(m.categoryForm.Name), m.categoryForm.Color)
	if err := m.store.AddCategory(category); err != nil {
		m.formError = "Failed to add category: " + err.Error()
		m.form.State = huh.StateNormal
		return m, cmd
	}

	m.loadCategories()
	m.loadStats()
	if m.timer.Phase == timer.PhaseIdle {
		for i, c := range m.categories {
			if c.ID == category.ID {
				m.selected = i
			}
		}
	}
	m.formError = ""
	m.state = m.previousState
	return m, cmd
}
