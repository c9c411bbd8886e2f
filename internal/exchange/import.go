// Package exchange moves annotations in and out of common geographic
// formats. Coordinates outside the program are degrees (x = longitude,
// y = latitude); inside they are map pixels.
package exchange

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/interact"
	"topomap/internal/mapobj"
)

var (
	ErrEmpty       = errors.New("no coordinates")
	ErrUnsupported = errors.New("unsupported geometry")
)

// Batch is the result of an import, already in map pixels.
type Batch struct {
	Lines  []*mapobj.Line
	Points []*mapobj.Point
	Bound  orb.Bound // degrees

	meta    *georef.MapMeta
	bounded bool
}

func newBatch(meta *georef.MapMeta) *Batch { return &Batch{meta: meta} }

func (b *Batch) Len() int { return len(b.Lines) + len(b.Points) }

func (b *Batch) extend(g orb.Geometry) {
	if !b.bounded {
		b.Bound = g.Bound()
		b.bounded = true
		return
	}
	b.Bound = b.Bound.Union(g.Bound())
}

func (b *Batch) addPoint(p orb.Point, name string) {
	pt := mapobj.NewPoint(b.meta.ToPixels(geom.FromOrb(p)))
	pt.Name = name
	b.Points = append(b.Points, pt)
}

// addPath splits a path into one line per segment. Repeated vertices are skipped.
func (b *Batch) addPath(ls orb.LineString) {
	for i := 1; i < len(ls); i++ {
		if ls[i-1].Equal(ls[i]) {
			continue
		}
		l := geom.Ln(b.meta.ToPixels(geom.FromOrb(ls[i-1])), b.meta.ToPixels(geom.FromOrb(ls[i])))
		b.Lines = append(b.Lines, mapobj.NewLine(l))
	}
}

func (b *Batch) add(g orb.Geometry, name string) error {
	switch g := g.(type) {
	case orb.Point:
		b.addPoint(g, name)
	case orb.MultiPoint:
		for _, p := range g {
			b.addPoint(p, name)
		}
	case orb.LineString:
		b.addPath(g)
	case orb.MultiLineString:
		for _, ls := range g {
			b.addPath(ls)
		}
	case orb.Ring:
		b.addPath(orb.LineString(g))
	case orb.Polygon:
		for _, r := range g {
			b.addPath(orb.LineString(r))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				b.addPath(orb.LineString(r))
			}
		}
	case orb.Collection:
		for _, sub := range g {
			if err := b.add(sub, name); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return fmt.Errorf("%w: empty", ErrUnsupported)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, g.GeoJSONType())
	}
	b.extend(g)
	return nil
}

func (b *Batch) done() (*Batch, error) {
	if b.Len() == 0 {
		return nil, ErrEmpty
	}
	return b, nil
}

// Apply adds the batch to the manager as one undo step.
func (b *Batch) Apply(m *interact.Manager) {
	m.History.TrackAll(func() {
		for _, ln := range b.Lines {
			m.Lines.Add(ln)
		}
		for _, pt := range b.Points {
			m.Points.Add(pt)
		}
	}, m.Lines, m.Points)
}
