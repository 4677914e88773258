package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	statusOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	statusWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	readoutStyle = lipgloss.NewStyle().Bold(true)
	chartStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	axisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
