package geom

import "github.com/paulmach/orb"

// Line is a directed segment from P1 to P2.
type Line struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

func Ln(p1, p2 Point) Line { return Line{P1: p1, P2: p2} }

// Vector returns P2-P1.
func (l Line) Vector() Point { return l.P2.Sub(l.P1) }

func (l Line) Len() float64 { return l.P1.Dist(l.P2) }

// Flip swaps the endpoints.
func (l Line) Flip() Line { return Line{P1: l.P2, P2: l.P1} }

func (l Line) Mid() Point { return l.P1.Mid(l.P2) }

// At returns P1 + t*(P2-P1).
func (l Line) At(t float64) Point { return l.P1.Add(l.Vector().Mul(t)) }

// Scalar is the normalized scalar projection of p onto the line:
// 0 at P1, 1 at P2. A zero-length segment yields -1.
func (l Line) Scalar(p Point) float64 {
	v := l.Vector()
	d := v.Dot(v)
	if d == 0 {
		return -1
	}
	return p.Sub(l.P1).Dot(v) / d
}

// Project returns the point of the segment nearest to p.
// A zero-length segment projects everything onto P1.
func (l Line) Project(p Point) Point {
	if l.P1 == l.P2 {
		return l.P1
	}
	return l.At(clamp01(l.Scalar(p)))
}

// ProjectInfinite projects p onto the infinite line through P1 and P2.
func (l Line) ProjectInfinite(p Point) Point {
	if l.P1 == l.P2 {
		return l.P1
	}
	return l.At(l.Scalar(p))
}

// Dist is the distance from p to the segment.
func (l Line) Dist(p Point) float64 { return p.Dist(l.Project(p)) }

// Normal returns the unit perpendicular of the segment direction,
// or the zero point for a degenerate segment.
func (l Line) Normal() Point {
	v := l.Vector()
	n := v.Len()
	if n == 0 {
		return Point{}
	}
	return Point{X: -v.Y / n, Y: v.X / n}
}

func (l Line) ToOrb() orb.LineString {
	return orb.LineString{l.P1.ToOrb(), l.P2.ToOrb()}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Clamp01 restricts t to [0,1].
func Clamp01(t float64) float64 { return clamp01(t) }
