// Package georef converts between canvas pixels and geographic degrees for a
// calibrated map.
package georef

import (
	"errors"
	"fmt"

	"topomap/internal/geom"
)

var ErrDegenerate = errors.New("degenerate calibration")

// MapMeta calibrates one named map. Two reference points are known both in
// canvas pixels and in degrees (x = longitude, y = latitude); everything in
// between is interpolated linearly per axis.
type MapMeta struct {
	Name         string     `yaml:"name" json:"name"`
	Title        string     `yaml:"title" json:"title,omitempty"`
	DegP1        geom.Point `yaml:"degP1" json:"degP1"`
	DegP2        geom.Point `yaml:"degP2" json:"degP2"`
	PxP1         geom.Point `yaml:"pxP1" json:"pxP1"`
	PxP2         geom.Point `yaml:"pxP2" json:"pxP2"`
	OneMetreInPx float64    `yaml:"oneMetreInPx" json:"oneMetreInPx"`

	// tile grid served by the tile provider
	TileW int `yaml:"tileW" json:"tileW"`
	TileH int `yaml:"tileH" json:"tileH"`
	Cols  int `yaml:"cols" json:"cols"`
	Rows  int `yaml:"rows" json:"rows"`
}

// Set copies every field of other into m. Switching the active map goes
// through here; MapMeta is otherwise treated as read-only.
func (m *MapMeta) Set(other MapMeta) { *m = other }

func (m *MapMeta) Validate() error {
	if m.DegP1.X == m.DegP2.X || m.DegP1.Y == m.DegP2.Y {
		return fmt.Errorf("map %q: %w: degree reference points share an axis", m.Name, ErrDegenerate)
	}
	if m.PxP1.X == m.PxP2.X || m.PxP1.Y == m.PxP2.Y {
		return fmt.Errorf("map %q: %w: pixel reference points share an axis", m.Name, ErrDegenerate)
	}
	if m.OneMetreInPx <= 0 {
		return fmt.Errorf("map %q: %w: oneMetreInPx must be positive", m.Name, ErrDegenerate)
	}
	return nil
}

// ToDegrees maps a canvas pixel to degrees.
func (m *MapMeta) ToDegrees(px geom.Point) geom.Point {
	return geom.Point{
		X: lerp(px.X, m.PxP1.X, m.PxP2.X, m.DegP1.X, m.DegP2.X),
		Y: lerp(px.Y, m.PxP1.Y, m.PxP2.Y, m.DegP1.Y, m.DegP2.Y),
	}
}

// ToPixels is the inverse of ToDegrees.
func (m *MapMeta) ToPixels(deg geom.Point) geom.Point {
	return geom.Point{
		X: lerp(deg.X, m.DegP1.X, m.DegP2.X, m.PxP1.X, m.PxP2.X),
		Y: lerp(deg.Y, m.DegP1.Y, m.DegP2.Y, m.PxP1.Y, m.PxP2.Y),
	}
}

// Metres converts a canvas distance to metres.
func (m *MapMeta) Metres(px float64) float64 {
	if m.OneMetreInPx <= 0 {
		return 0
	}
	return px / m.OneMetreInPx
}

// Size is the canvas extent of the tile grid.
func (m *MapMeta) Size() geom.Point {
	return geom.Point{X: float64(m.TileW * m.Cols), Y: float64(m.TileH * m.Rows)}
}

func lerp(v, a1, a2, b1, b2 float64) float64 {
	return b1 + (v-a1)/(a2-a1)*(b2-b1)
}
