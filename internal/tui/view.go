package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pomolit/internal/timer"
	"github.com/julianstephens/pomolit/internal/tracking"
)

const barWidth = 30

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimer:
		content = m.viewTimer()
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateCategories:
		content = docStyle.Render(m.viewCategories())
	case StateEditDurations, StateAddCategory:
		content = docStyle.Render(m.form.View())
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, dangerStyle.Render(m.formError))
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Timer", "Stats", "Categories"}
	active := m.state
	if active == StateEditDurations || active == StateAddCategory {
		active = m.previousState
	}
	for i, title := range tabTitles {
		if active == mainViews[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimer() string {
	s := m.timer
	d := m.engine.Durations()

	status := "Ready"
	switch s.Phase {
	case timer.PhaseRunning:
		status = "Running"
	case timer.PhasePaused:
		status = "Paused"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		modeStyle.Render(m.viewModes()),
		clockStyle.Render(timer.FormatRemaining(s.RemainingSeconds)),
		renderBar(timer.Progress(s, d), barWidth),
		mutedStyle.Render(status),
		"",
		m.viewCategoryPicker(),
		"",
		mutedStyle.Render(fmt.Sprintf("Pomodoros this cycle: %d · Today: %d/%d",
			s.CompletedFocusCount, m.today.TotalPomodoros, m.settings.Settings().DailyGoal)),
	)

	if m.width > 0 && m.height > 4 {
		return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, content)
	}
	return docStyle.Render(content)
}

func (m Model) viewModes() string {
	modes := []timer.Mode{timer.ModeFocus, timer.ModeShortBreak, timer.ModeLongBreak}
	parts := make([]string, len(modes))
	for i, mode := range modes {
		label := fmt.Sprintf("[%d] %s", i+1, mode.Label())
		if mode == m.timer.Mode {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = inactiveTabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewCategoryPicker() string {
	c, ok := m.selectedCategory()
	if !ok {
		return dangerStyle.Render("No categories, press a to add one")
	}
	name := categoryStyle(c.ColorKey).Render("● " + c.Name)
	if m.timer.Phase != timer.PhaseIdle {
		return name
	}
	return mutedStyle.Render("← ") + name + mutedStyle.Render(" →")
}

func (m Model) viewStats() string {
	var b strings.Builder
	goal := m.settings.Settings().DailyGoal

	b.WriteString(headerStyle.Render("Today"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d/%d pomodoros, %d min focused\n", m.today.TotalPomodoros, goal, m.today.TotalMinutes)
	if goal > 0 {
		b.WriteString(renderBar(float64(m.today.TotalPomodoros)/float64(goal), barWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Last 7 days"))
	b.WriteString("\n")
	if len(m.history) == 0 {
		b.WriteString(mutedStyle.Render("No focus sessions recorded yet"))
		return b.String()
	}
	for _, h := range m.history {
		b.WriteString(m.viewHistoryRow(h))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewHistoryRow(h tracking.CategoryHistory) string {
	name := h.Category.Name
	if h.Category.DeletedAt != nil {
		name += " (deleted)"
	}
	style := categoryStyle(h.Category.ColorKey)
	return fmt.Sprintf("%s %s %s",
		style.Width(24).Render(name),
		style.Render(tracking.Sparkline(h.Days)),
		mutedStyle.Render(fmt.Sprintf("%4d min %3d pomodoros", h.TotalMinutes, h.TotalPomodoros)),
	)
}

func (m Model) viewCategories() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Categories"))
	b.WriteString("\n")
	if len(m.categories) == 0 {
		b.WriteString(mutedStyle.Render("No categories, press a to add one"))
		return b.String()
	}
	for i, c := range m.categories {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := cursor + categoryStyle(c.ColorKey).Render("● "+c.Name)
		if c.TargetMinutes > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  target %dm/day", c.TargetMinutes))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderBar draws a horizontal bar filled to fraction p.
func renderBar(p float64, width int) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p * float64(width))
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
