package ui

import "github.com/charmbracelet/lipgloss"

var styles = newPalette("#1DB954", "#626262")

// palette is a simple stylesheet built with named [lipgloss.Style] fields.
type palette struct {
	title  lipgloss.Style
	status lipgloss.Style
}

func newPalette(accent, muted string) *palette {
	return &palette{
		title:  newStyle(accent).Bold(true),
		status: newStyle(muted).Italic(true),
	}
}

func newStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}
