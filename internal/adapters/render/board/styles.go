package board

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	jobTitle   lipgloss.Style
	jobMeta    lipgloss.Style
	stage      lipgloss.Style
	terminal   lipgloss.Style
	candidate  lipgloss.Style
	detail     lipgloss.Style
	analyzing  lipgloss.Style
	hint       lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		jobTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		jobMeta:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		stage:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		terminal:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		candidate:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		analyzing:  lipgloss.NewStyle().Faint(true).Italic(true),
		hint:       lipgloss.NewStyle().Faint(true),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
