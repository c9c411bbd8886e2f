package mapobj

import (
	"fmt"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/view"
)

// tickExtra is added to the stroke width to get the half-length of a division tick.
const tickExtra = 7

// Line is a directed segment with optional division ticks and an owned
// topographic profile.
type Line struct {
	base
	L         geom.Line
	Divisions int
	Profile   *ProfileList
}

func NewLine(l geom.Line) *Line {
	ln := &Line{L: l}
	ln.Profile = newProfileList(ln)
	return ln
}

func (ln *Line) DistanceToScreen(s geom.Point, tr *view.Transform) float64 {
	return ln.screen(tr).Dist(s)
}

func (ln *Line) SnapTarget(c geom.Point) geom.Point { return ln.L.Project(c) }

// SetDivisions sets the tick count; negative values become zero.
func (ln *Line) SetDivisions(n int) { ln.Divisions = max(0, n) }

// Reverse swaps the endpoints. Profile points keep their canvas positions.
func (ln *Line) Reverse() {
	ln.L = ln.L.Flip()
	ln.Profile.Reverse()
}

func (ln *Line) screen(tr *view.Transform) geom.Line {
	return geom.Ln(tr.ToScreen(ln.L.P1), tr.ToScreen(ln.L.P2))
}

func (ln *Line) Draw(c Canvas, tr *view.Transform) {
	st := ln.EffectiveStyle()
	sl := ln.screen(tr)
	c.StrokeLine(sl.P1, sl.P2, st)
	if ln.Divisions > 0 {
		n := sl.Normal().Mul(st.Width + tickExtra)
		for i := 1; i <= ln.Divisions; i++ {
			at := sl.At(float64(i) / float64(ln.Divisions+1))
			c.StrokeLine(at.Sub(n), at.Add(n), st)
		}
	}
	ln.Profile.Draw(c, tr)
}

// Length is the canvas length converted to metres.
func (ln *Line) Length(meta *georef.MapMeta) float64 { return meta.Metres(ln.L.Len()) }

func (ln *Line) Summary(meta *georef.MapMeta, unit georef.Unit) string {
	a, b := meta.ToDegrees(ln.L.P1), meta.ToDegrees(ln.L.P2)
	s := fmt.Sprintf("line %s  %.5f,%.5f -> %.5f,%.5f", unit.Format(ln.Length(meta)), a.X, a.Y, b.X, b.Y)
	if n := ln.Profile.Len(); n > 0 {
		s += fmt.Sprintf("  [%d profile]", n)
	}
	return s
}
