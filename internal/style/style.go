// Package style defines the shared lipgloss styles for CLI output.
package style

import "github.com/charmbracelet/lipgloss"

var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Faint(true)

	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	Epic  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	Issue = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)
