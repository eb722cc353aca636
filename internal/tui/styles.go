package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	cellBase      = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	availableCell = cellBase.Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237"))
	selectedCell  = cellBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	lockedCell    = cellBase.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	panelStyle = lipgloss.NewStyle().PaddingLeft(2)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
