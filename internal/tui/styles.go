package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0, 0, 0)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Align(lipgloss.Center)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// categoryColors maps palette keys to terminal colors.
var categoryColors = map[string]lipgloss.Color{
	"emerald": lipgloss.Color("#10b981"),
	"blue":    lipgloss.Color("#3b82f6"),
	"purple":  lipgloss.Color("#8b5cf6"),
	"amber":   lipgloss.Color("#f59e0b"),
	"red":     lipgloss.Color("#ef4444"),
	"teal":    lipgloss.Color("#14b8a6"),
	"pink":    lipgloss.Color("#ec4899"),
	"indigo":  lipgloss.Color("#6366f1"),
	"lime":    lipgloss.Color("#84cc16"),
	"orange":  lipgloss.Color("#f97316"),
}

func categoryStyle(colorKey string) lipgloss.Style {
	color, ok := categoryColors[colorKey]
	if !ok {
		color = lipgloss.Color("252")
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}
