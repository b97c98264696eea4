// Package tui implements a terminal review surface for stored strategies:
// pick a strategy, run the validation pipeline against it, and read the
// briefing or the diff against the baseline without leaving the terminal.
package tui

import "github.com/charmbracelet/lipgloss"

// Verdict glyphs convey meaning without relying on color alone.
const (
	GlyphOK      = "✓"
	GlyphErrors  = "✗"
	GlyphWarning = "⚠"
	GlyphCursor  = "▸"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorCyan).
	Padding(0, 1)

var (
	itemNormal   = lipgloss.NewStyle().Foreground(colorWhite)
	itemSelected = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	itemBaseline = lipgloss.NewStyle().Foreground(colorCyan)

	verdictOK      = lipgloss.NewStyle().Foreground(colorGreen)
	verdictErrors  = lipgloss.NewStyle().Foreground(colorRed)
	verdictWarning = lipgloss.NewStyle().Foreground(colorYellow)

	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
)
