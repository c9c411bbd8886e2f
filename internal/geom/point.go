package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Point is a 2D vector. The unit depends on the space it lives in
// (screen pixels, canvas pixels or degrees).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }

func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Len is the euclidean norm.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Dist(o Point) float64 { return p.Sub(o).Len() }

func (p Point) Mid(o Point) Point { return p.Add(o).Mul(0.5) }

// Map applies f to both components.
func (p Point) Map(f func(float64) float64) Point { return Point{f(p.X), f(p.Y)} }

// Combine applies f component-wise to p and o.
func (p Point) Combine(o Point, f func(a, b float64) float64) Point {
	return Point{f(p.X, o.X), f(p.Y, o.Y)}
}

// Near reports whether p and o are within eps on both axes.
func (p Point) Near(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

func (p Point) String() string { return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y) }

// ToOrb converts to an orb point, X first.
func (p Point) ToOrb() orb.Point { return orb.Point{p.X, p.Y} }

func FromOrb(o orb.Point) Point { return Point{X: o[0], Y: o[1]} }
