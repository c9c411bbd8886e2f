package mapobj

import (
	"cmp"
	"fmt"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/objlist"
	"topomap/internal/style"
	"topomap/internal/view"
)

// ProfilePoint is a height sample at a fraction of its parent line.
// It has no coordinate of its own.
type ProfilePoint struct {
	base
	line     *Line
	Position float64
	Height   float64
}

func (pp *ProfilePoint) Line() *Line { return pp.line }

// Pos is computed from the parent line on every call.
func (pp *ProfilePoint) Pos() geom.Point { return pp.line.L.At(pp.Position) }

// SetPos is a no-op: a profile point only moves with its line.
func (pp *ProfilePoint) SetPos(geom.Point) {}

func (pp *ProfilePoint) DistanceToScreen(s geom.Point, tr *view.Transform) float64 {
	return tr.ToScreen(pp.Pos()).Dist(s)
}

func (pp *ProfilePoint) SnapTarget(geom.Point) geom.Point { return pp.Pos() }

// EffectiveStyle uses the parent line's table so markers match their line.
// The marker's own flags decide the state when any is raised.
func (pp *ProfilePoint) EffectiveStyle() style.Style {
	f := pp.drawFlags()
	if !f.Any() {
		f = pp.line.drawFlags()
	}
	return pp.line.table().Pick(f)
}

func (pp *ProfilePoint) Draw(c Canvas, tr *view.Transform) {
	drawDisc(c, tr.ToScreen(pp.Pos()), pp.EffectiveStyle(), DefaultRadiusScale, DefaultRadiusOffset)
}

// Distance is the distance from the line start in metres.
func (pp *ProfilePoint) Distance(meta *georef.MapMeta) float64 {
	return meta.Metres(pp.line.L.Len() * pp.Position)
}

func (pp *ProfilePoint) Summary(meta *georef.MapMeta, unit georef.Unit) string {
	return fmt.Sprintf("profile %s  h=%g", unit.Format(pp.Distance(meta)), pp.Height)
}

// ProfileList holds the profile points of one line, sorted by position.
type ProfileList struct {
	*objlist.List[*ProfilePoint]
	line *Line
}

func newProfileList(ln *Line) *ProfileList {
	l := objlist.New[*ProfilePoint](nil)
	l.SortBy(func(a, b *ProfilePoint) int { return cmp.Compare(a.Position, b.Position) })
	return &ProfileList{List: l, line: ln}
}

// NewPoint creates a profile point for this list's line without adding it.
// position is clamped to [0,1].
func (pl *ProfileList) NewPoint(position, height float64) *ProfilePoint {
	return &ProfilePoint{line: pl.line, Position: geom.Clamp01(position), Height: height}
}

// AddAt creates and inserts a profile point.
func (pl *ProfileList) AddAt(position, height float64) *ProfilePoint {
	pp := pl.NewPoint(position, height)
	pl.Add(pp)
	return pp
}

// Reverse maps every position p to 1-p and re-sorts.
func (pl *ProfileList) Reverse() {
	for _, pp := range pl.Items() {
		pp.Position = 1 - pp.Position
	}
	pl.Resort()
}

func (pl *ProfileList) Draw(c Canvas, tr *view.Transform) {
	for _, pp := range pl.Items() {
		pp.Draw(c, tr)
	}
}

// Sample is one point of an elevation profile.
type Sample struct {
	Distance float64 // metres from the line start
	Height   float64
}

func (pl *ProfileList) Samples(meta *georef.MapMeta) []Sample {
	items := pl.Items()
	out := make([]Sample, 0, len(items))
	for _, pp := range items {
		out = append(out, Sample{Distance: pp.Distance(meta), Height: pp.Height})
	}
	return out
}
