package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/phrasedrill/internal/store"
)

// palette holds the colours of one theme.
type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	success lipgloss.Color
	alert   lipgloss.Color
	border  lipgloss.Color
}

var palettes = map[string]palette{
	store.ThemeLight: {
		text:    lipgloss.Color("#1F1F1F"),
		muted:   lipgloss.Color("#6E6E6E"),
		accent:  lipgloss.Color("#A0701A"),
		success: lipgloss.Color("#2E7D32"),
		alert:   lipgloss.Color("#C62828"),
		border:  lipgloss.Color("#BDBDBD"),
	},
	store.ThemeDark: {
		text:    lipgloss.Color("#F0F0F0"),
		muted:   lipgloss.Color("#8C8C8C"),
		accent:  lipgloss.Color("#C89A3A"),
		success: lipgloss.Color("#7BC47F"),
		alert:   lipgloss.Color("#FF4D4F"),
		border:  lipgloss.Color("#4A4A4A"),
	},
}

// styles are the rendered lipgloss styles for the active theme.
type styles struct {
	title    lipgloss.Style
	source   lipgloss.Style
	target   lipgloss.Style
	disabled lipgloss.Style
	status   lipgloss.Style
	button   lipgloss.Style
	notice   lipgloss.Style
	alert    lipgloss.Style
	card     lipgloss.Style
	mastered lipgloss.Style
	table    table.Styles
	gradient [2]string
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[store.ThemeLight]
	}
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border).
		BorderBottom(true).
		Foreground(p.muted).
		Bold(false)
	ts.Selected = ts.Selected.Foreground(p.accent).Bold(true)
	ts.Cell = ts.Cell.Foreground(p.text)

	return styles{
		title:    lipgloss.NewStyle().Foreground(p.muted),
		source:   lipgloss.NewStyle().Foreground(p.text).Bold(true),
		target:   lipgloss.NewStyle().Foreground(p.accent),
		disabled: lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
		status:   lipgloss.NewStyle().Foreground(p.muted),
		button: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.accent),
		notice: lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		alert:  lipgloss.NewStyle().Foreground(p.alert),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.border),
		mastered: lipgloss.NewStyle().Foreground(p.success),
		table:    ts,
		gradient: [2]string{string(p.accent), string(p.success)},
	}
}
