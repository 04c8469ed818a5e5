package ui

import "github.com/charmbracelet/lipgloss"

// StyleManager encapsulates the browse view styles.
type StyleManager struct {
	Chapter  lipgloss.Style
	ID       lipgloss.Style
	Desc     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles.
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Chapter:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		ID:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Desc:     lipgloss.NewStyle(),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

var styles = DefaultStyles()
