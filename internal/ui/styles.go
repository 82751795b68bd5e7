package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains all the style definitions for the UI
type Styles struct {
	Title   lipgloss.Style
	Dim     lipgloss.Style
	Count   lipgloss.Style
	Status  lipgloss.Style
	Empty   lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
