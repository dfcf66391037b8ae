package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/pomolit/internal/errors"
	"github.com/julianstephens/pomolit/internal/models"
	"github.com/julianstephens/pomolit/internal/settings"
	"github.com/julianstephens/pomolit/internal/storage"
	"github.com/julianstephens/pomolit/internal/timer"
	"github.com/julianstephens/pomolit/internal/tracking"
)

type SessionState int

const (
	StateTimer SessionState = iota
	StateStats
	StateCategories
	StateEditDurations
	StateAddCategory
)

// mainViews are the tabs cycled with tab/shift+tab.
var mainViews = []SessionState{StateTimer, StateStats, StateCategories}

type DurationsFormModel struct {
	Focus         string
	ShortBreak    string
	LongBreak     string
	DailyGoal     string
	Notifications bool
	Bell          bool
}

type CategoryFormModel struct {
	Name  string
	Color string
}

// Deps are the collaborators the TUI drives.
type Deps struct {
	Engine   *timer.Engine
	Settings *settings.Live
	Recorder *tracking.Recorder
	Store    storage.Provider
}

type Model struct {
	engine   *timer.Engine
	events   <-chan timer.Event
	settings *settings.Live
	recorder *tracking.Recorder
	store    storage.Provider

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	timer      timer.State
	categories []models.Category
	selected   int
	today      models.DaySummary
	history    []tracking.CategoryHistory

	form          *huh.Form
	durationsForm *DurationsFormModel
	categoryForm  *CategoryFormModel
	formError     string

	quitting bool
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	m := Model{
		engine:   deps.Engine,
		events:   deps.Engine.Subscribe(64),
		settings: deps.Settings,
		recorder: deps.Recorder,
		store:    deps.Store,
		state:    StateTimer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		timer:    deps.Engine.State(),
	}
	m.loadCategories()
	m.loadStats()
	m.syncSelection()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTimer:
		keys = append(keys, m.keys.Toggle, m.keys.Reset, m.keys.Settings)
	case StateCategories:
		keys = append(keys, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	timerKeys := []key.Binding{m.keys.Toggle, m.keys.Reset, m.keys.Focus, m.keys.Short, m.keys.Long}
	navigation := []key.Binding{m.keys.Left, m.keys.Right, m.keys.Settings, m.keys.Add}
	return [][]key.Binding{global, timerKeys, navigation}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tea.SetWindowTitle(m.title()))
}

// selectedCategory returns the category under the picker, if any.
func (m Model) selectedCategory() (models.Category, bool) {
	if m.selected < 0 || m.selected >= len(m.categories) {
		return models.Category{}, false
	}
	return m.categories[m.selected], true
}

// categoryName resolves id against the loaded categories.
func (m Model) categoryName(id string) string {
	for _, c := range m.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

func (m Model) title() string {
	name := m.categoryName(m.timer.SelectedCategoryID)
	if name == "" && m.timer.Phase == timer.PhaseIdle {
		if c, ok := m.selectedCategory(); ok {
			name = c.Name
		}
	}
	return timer.Title(m.timer, name)
}

func (m *Model) loadCategories() {
	categories, err := m.store.GetAllCategories()
	if apperrors.BestEffort("load categories", err) {
		return
	}
	m.categories = categories
	if m.selected >= len(m.categories) {
		m.selected = len(m.categories) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) loadStats() {
	if today, err := m.recorder.Today(); !apperrors.BestEffort("load today's summary", err) {
		m.today = today
	}
	if history, err := m.recorder.History(7); !apperrors.BestEffort("load focus history", err) {
		m.history = history
	}
}

// syncSelection points the picker at the session's category, so a restored
// session shows what it is being credited to.
func (m *Model) syncSelection() {
	if m.timer.SelectedCategoryID == "" {
		return
	}
	for i, c := range m.categories {
		if c.ID == m.timer.SelectedCategoryID {
			m.selected = i
			return
		}
	}
}
