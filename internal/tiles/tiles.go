// Package tiles describes the raster tiles a map is cut into.
package tiles

import (
	"errors"
	"fmt"

	"topomap/internal/geom"
	"topomap/internal/georef"
)

var ErrNoTiles = errors.New("map has no tile grid")

// Tile is one raster tile in canvas pixels.
type Tile struct {
	Index    int
	Col, Row int
	Min, Max geom.Point
}

// Provider loads the tiles of a map. onTile runs once per tile with the
// running count of loaded tiles and the total; onDone runs after the last.
type Provider interface {
	Load(meta georef.MapMeta, onTile func(t Tile, loaded, total int), onDone func()) error
}

// Grid reports the tile layout described by the MapMeta without fetching
// any image data.
type Grid struct{}

func (Grid) Load(meta georef.MapMeta, onTile func(Tile, int, int), onDone func()) error {
	ts, err := Layout(meta)
	if err != nil {
		return err
	}
	for i, t := range ts {
		if onTile != nil {
			onTile(t, i+1, len(ts))
		}
	}
	if onDone != nil {
		onDone()
	}
	return nil
}

// Layout lists the tiles row by row.
func Layout(meta georef.MapMeta) ([]Tile, error) {
	if meta.Cols <= 0 || meta.Rows <= 0 || meta.TileW <= 0 || meta.TileH <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoTiles, meta.Name)
	}
	out := make([]Tile, 0, meta.Cols*meta.Rows)
	w, h := float64(meta.TileW), float64(meta.TileH)
	for r := 0; r < meta.Rows; r++ {
		for c := 0; c < meta.Cols; c++ {
			lo := geom.Pt(float64(c)*w, float64(r)*h)
			out = append(out, Tile{
				Index: r*meta.Cols + c,
				Col:   c,
				Row:   r,
				Min:   lo,
				Max:   lo.Add(geom.Pt(w, h)),
			})
		}
	}
	return out, nil
}

// Visible returns the tiles that intersect the canvas rectangle [lo, hi].
func Visible(ts []Tile, lo, hi geom.Point) []Tile {
	var out []Tile
	for _, t := range ts {
		if t.Max.X < lo.X || t.Min.X > hi.X || t.Max.Y < lo.Y || t.Min.Y > hi.Y {
			continue
		}
		out = append(out, t)
	}
	return out
}
