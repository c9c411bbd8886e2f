package exchange

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/mapobj"
)

// GeoJSON converts the annotations to a feature collection in degrees.
// Lines carry their length and elevation profile as properties.
func GeoJSON(lines []*mapobj.Line, points []*mapobj.Point, meta *georef.MapMeta) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	deg := func(p geom.Point) orb.Point { return meta.ToDegrees(p).ToOrb() }
	for _, ln := range lines {
		f := geojson.NewFeature(orb.LineString{deg(ln.L.P1), deg(ln.L.P2)})
		f.Properties["kind"] = "line"
		f.Properties["length_m"] = ln.Length(meta)
		f.Properties["divisions"] = ln.Divisions
		if ln.Profile.Len() > 0 {
			var profile []map[string]float64
			for _, s := range ln.Profile.Samples(meta) {
				profile = append(profile, map[string]float64{"distance_m": s.Distance, "height": s.Height})
			}
			f.Properties["profile"] = profile
		}
		fc.Append(f)
	}
	for _, pt := range points {
		f := geojson.NewFeature(deg(pt.Pos()))
		f.Properties["kind"] = "point"
		if pt.Name != "" {
			f.Properties["name"] = pt.Name
		}
		fc.Append(f)
	}
	return fc
}

// ParseGeoJSON reads a FeatureCollection, a single Feature or a bare geometry.
// A feature's "name" property names the points it produces.
func ParseGeoJSON(data []byte, meta *georef.MapMeta) (*Batch, error) {
	b := newBatch(meta)
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		for _, f := range fc.Features {
			if err := b.add(f.Geometry, f.Properties.MustString("name", "")); err != nil {
				return nil, fmt.Errorf("geojson: %w", err)
			}
		}
		return b.done()
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil && f.Geometry != nil {
		if err := b.add(f.Geometry, f.Properties.MustString("name", "")); err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		return b.done()
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	if err := b.add(g.Geometry(), ""); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return b.done()
}
