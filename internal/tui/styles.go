package tui

import (
	"github.com/charmbracelet/lipgloss"

	"topomap/internal/style"
)

// Chrome
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	warnFg    = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
	promptStyle = lipgloss.NewStyle().Foreground(warnFg).Bold(true)
)

// Map strokes that are not annotations.
var (
	tileEdge  = style.Style{Color: string(borderCol), Width: 1, StrokeType: style.Dotted}
	mapFrame  = style.Style{Color: string(baseDimFg.Dark), Width: 1, StrokeType: style.Solid}
	cursorDot = style.Style{Color: string(accentFg), Width: 1, StrokeType: style.Solid}
)
