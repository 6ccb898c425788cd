package tui

import "github.com/charmbracelet/lipgloss"

var (
	tableBorderStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	previewBorderStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true).Width(8)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true)
	termStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("7"))

	matchLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
)
