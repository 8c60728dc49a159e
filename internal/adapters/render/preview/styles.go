package preview

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	manager  lipgloss.Style
	row      lipgloss.Style
	capped   lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	quality  lipgloss.Style
	incident lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		manager:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		row:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		capped:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		quality:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		incident: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
}
