package mapobj

import (
	"fmt"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/style"
	"topomap/internal/view"
)

// Disc radius = (RadiusScale*width + RadiusOffset) * dpr.
const (
	DefaultRadiusScale  = 1.5
	DefaultRadiusOffset = 1.0
)

// Point is a marker at a canvas position.
type Point struct {
	base
	p    geom.Point
	Name string

	RadiusScale  float64
	RadiusOffset float64
}

func NewPoint(p geom.Point) *Point {
	return &Point{p: p, RadiusScale: DefaultRadiusScale, RadiusOffset: DefaultRadiusOffset}
}

func (pt *Point) Pos() geom.Point { return pt.p }

func (pt *Point) SetPos(p geom.Point) { pt.p = p }

func (pt *Point) DistanceToScreen(s geom.Point, tr *view.Transform) float64 {
	return tr.ToScreen(pt.p).Dist(s)
}

func (pt *Point) SnapTarget(geom.Point) geom.Point { return pt.p }

func (pt *Point) Draw(c Canvas, tr *view.Transform) {
	drawDisc(c, tr.ToScreen(pt.p), pt.EffectiveStyle(), pt.RadiusScale, pt.RadiusOffset)
}

func (pt *Point) Summary(meta *georef.MapMeta, _ georef.Unit) string {
	d := meta.ToDegrees(pt.p)
	s := fmt.Sprintf("point %.5f, %.5f", d.X, d.Y)
	if pt.Name != "" {
		s = pt.Name + "  " + s
	}
	return s
}

func drawDisc(c Canvas, at geom.Point, st style.Style, scale, offset float64) {
	r := (scale*st.Width + offset) * c.DPR()
	c.FillDisc(at, r, st)
}
