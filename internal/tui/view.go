package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	contentWidth := lay.contentW

	// Header
	title := m.mgr.Meta.Title
	if title == "" {
		title = m.mgr.Meta.Name
	}
	header := titleStyle.Render(fmt.Sprintf(" topomap ─ %s ", title)) + dimStyle.Render(" "+m.mgr.Mode().String())
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Height(lay.contentH).Render(m.l.View())
	}

	// Map viewport
	var mapView string
	if m.showProfile {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderMap(lay.mapW, lay.mapH))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer: status or prompt, then help and cursor readout
	var left string
	if m.out.done != nil {
		left = promptStyle.Render(" "+m.out.prompt+": ") + m.ti.View()
	} else {
		left = dimStyle.Render(" " + m.out.status + " ")
	}
	coords := ""
	if m.hovering {
		d := m.mgr.CursorDegrees()
		snap := "off"
		if m.mgr.Settings.Snap {
			snap = "on"
		}
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  snap %s  x%.3f  ", d.X, d.Y, snap, m.mgr.Transform.Scale))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", spacerW), coords)
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(line1),
		lipgloss.NewStyle().Width(contentWidth).MaxHeight(1).Render(m.renderHelp()),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"l line",
		"p point",
		"t profile",
		"x delete",
		"u/r undo/redo",
		"v reverse",
		"[/] ticks",
		"s snap",
		"+/- zoom",
		"←↑↓→ pan",
		"f fit",
		"a profile table",
		"Tab objects",
		"w save",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
