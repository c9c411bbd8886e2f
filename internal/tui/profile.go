package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"topomap/internal/style"
)

// refreshProfile fills the profile table from the single selected line.
func (m *Model) refreshProfile() {
	active := m.mgr.Lines.GetState(style.StateActive, true)
	if len(active) != 1 {
		m.showProfile = false
		m.out.status = "select one line to see its profile"
		return
	}
	ln := active[0]
	samples := ln.Profile.Samples(m.mgr.Meta)
	if len(samples) == 0 {
		m.showProfile = false
		m.out.status = "line has no profile points, press t to add some"
		return
	}
	unit := m.mgr.Settings.Unit
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Position", Width: 10},
		{Title: "Distance", Width: 14},
		{Title: "Height", Width: 10},
	}
	rows := make([]table.Row, 0, len(samples))
	for i, pp := range ln.Profile.Items() {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.4f", pp.Position),
			unit.Format(samples[i].Distance),
			fmt.Sprintf("%g", pp.Height),
		})
	}
	// clear rows before swapping columns so the table never renders a mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.out.status = fmt.Sprintf("profile: %d points over %s", len(rows), unit.Format(ln.Length(m.mgr.Meta)))
}
