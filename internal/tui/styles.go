package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FAEE"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1D3557")).
			Background(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)

	vinylStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FAEE"))

	swipeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))
)
