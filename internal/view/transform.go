// Package view maps canvas space onto screen space with a translate and scale pair.
package view

import "topomap/internal/geom"

// ZoomFactor is the scale multiplier of one zoom-out step; zooming in uses its inverse.
const ZoomFactor = 0.8

// Transform is the pan/zoom state of a loaded map.
// Scale is always positive.
type Transform struct {
	Translate geom.Point `json:"translate"`
	Scale     float64    `json:"scale"`
}

func New() *Transform { return &Transform{Scale: 1} }

func (t *Transform) ToScreen(c geom.Point) geom.Point {
	return c.Mul(t.Scale).Add(t.Translate)
}

func (t *Transform) ToCanvas(s geom.Point) geom.Point {
	return s.Sub(t.Translate).Div(t.Scale)
}

// ZoomAt changes the scale keeping the canvas point under target fixed on screen.
func (t *Transform) ZoomAt(target geom.Point, scale float64) {
	if scale <= 0 || scale == t.Scale {
		return
	}
	k := scale / t.Scale
	t.Translate = target.Sub(target.Sub(t.Translate).Mul(k))
	t.Scale = scale
}

// ZoomStep zooms one wheel tick about target; in zooms in.
func (t *Transform) ZoomStep(target geom.Point, in bool) {
	f := ZoomFactor
	if in {
		f = 1 / ZoomFactor
	}
	t.ZoomAt(target, t.Scale*f)
}

// Pan moves the view by a screen-space delta.
func (t *Transform) Pan(d geom.Point) { t.Translate = t.Translate.Add(d) }

// Assign copies other into t. It is used when restoring saved state.
func (t *Transform) Assign(other Transform) {
	if other.Scale <= 0 {
		return
	}
	t.Translate = other.Translate
	t.Scale = other.Scale
}

// Fit returns the transform that shows a canvas of size mapSize centred
// in a viewport of size viewport.
func Fit(mapSize, viewport geom.Point) Transform {
	if mapSize.X <= 0 || mapSize.Y <= 0 || viewport.X <= 0 || viewport.Y <= 0 {
		return Transform{Scale: 1}
	}
	scale := min(viewport.X/mapSize.X, viewport.Y/mapSize.Y)
	off := viewport.Sub(mapSize.Mul(scale)).Mul(0.5)
	return Transform{Translate: off, Scale: scale}
}
