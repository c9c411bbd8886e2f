package tui

import (
	"strings"

	"topomap/internal/geom"
	"topomap/internal/style"
	"topomap/internal/tiles"
)

func strokeRect(c *brailleBuf, lo, hi geom.Point, st style.Style) {
	a, b := geom.Pt(hi.X, lo.Y), geom.Pt(lo.X, hi.Y)
	c.StrokeLine(lo, a, st)
	c.StrokeLine(a, hi, st)
	c.StrokeLine(hi, b, st)
	c.StrokeLine(b, lo, st)
}

// renderMap draws the tile grid, the annotations and the cursor into a
// w x h cell braille canvas.
func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	tr := m.mgr.Transform

	if m.tilesReady {
		lo := tr.ToCanvas(geom.Pt(0, 0))
		hi := tr.ToCanvas(geom.Pt(float64(w*2), float64(h*4)))
		for _, t := range tiles.Visible(m.tileLayout, lo, hi) {
			strokeRect(br, tr.ToScreen(t.Min), tr.ToScreen(t.Max), tileEdge)
		}
	}
	strokeRect(br, tr.ToScreen(geom.Pt(0, 0)), tr.ToScreen(m.mgr.Meta.Size()), mapFrame)

	m.mgr.Draw(br)

	if m.hovering {
		snap := tr.ToScreen(m.mgr.Pointer().Snap)
		r := 0.5
		if m.mgr.Hovered() != nil && m.mgr.Settings.Snap {
			r = 1.5
		}
		br.FillDisc(snap, r, cursorDot)
	}
	return strings.Join(br.toLines(), "\n")
}
