package ui

import "github.com/charmbracelet/lipgloss"

// theme holds the [lipgloss.Style] set shared by every view.
type theme struct {
	title lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	dim   lipgloss.Style
}

var styles = newTheme()

func newTheme() theme {
	return theme{
		title: lipgloss.NewStyle().Foreground(lipgloss.Color("#5F5FD7")).Bold(true).MarginBottom(1),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D75F5F")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF5F")),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
	}
}
