package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	styleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214"))

	styleDir = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	styleChecked = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	styleStatus = lipgloss.NewStyle().
			Faint(true)

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
