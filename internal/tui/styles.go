package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ghreadme/ghreadme/internal/config"
	"github.com/ghreadme/ghreadme/internal/readme"
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	status   lipgloss.Style
	errorMsg lipgloss.Style
	help     lipgloss.Style
	preview  lipgloss.Style
	selected lipgloss.Style
	comment  lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	palette := readme.PaletteFor(theme)

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(palette.TitleForeground),
		label:    lipgloss.NewStyle().Foreground(palette.FaintText).Width(12),
		status:   lipgloss.NewStyle().Foreground(palette.FaintText),
		errorMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		help:     lipgloss.NewStyle().Foreground(palette.FaintText),
		preview: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.BorderColor).
			Padding(0, 1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(palette.LinkForeground),
		comment:  lipgloss.NewStyle().Foreground(palette.FaintText).Italic(true),
	}
}
