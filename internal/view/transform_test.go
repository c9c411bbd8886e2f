package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"topomap/internal/geom"
)

var transforms = []Transform{
	{Translate: geom.Pt(0, 0), Scale: 1},
	{Translate: geom.Pt(-120.5, 33.25), Scale: 0.37},
	{Translate: geom.Pt(900, -4000), Scale: 12.5},
	{Translate: geom.Pt(1e-3, 7), Scale: 1e-4},
}

var samplePoints = []geom.Point{
	geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(-250.75, 9981.5), geom.Pt(3e5, -2e5),
}

func TestRoundTrip(t *testing.T) {
	for _, tr := range transforms {
		for _, c := range samplePoints {
			got := tr.ToCanvas(tr.ToScreen(c))
			assert.InDelta(t, c.X, got.X, 1e-6)
			assert.InDelta(t, c.Y, got.Y, 1e-6)
		}
	}
}

func TestZoomAnchorInvariance(t *testing.T) {
	for _, base := range transforms {
		for _, s := range samplePoints {
			for _, k := range []float64{0.01, 0.8, 1, 1.25, 40} {
				tr := base
				before := tr.ToCanvas(s)
				tr.ZoomAt(s, k)
				after := tr.ToCanvas(s)
				assert.InDelta(t, before.X, after.X, 1e-6*max(1, abs(before.X)))
				assert.InDelta(t, before.Y, after.Y, 1e-6*max(1, abs(before.Y)))
				assert.Equal(t, k, tr.Scale)
			}
		}
	}
}

func TestZoomAtIdempotent(t *testing.T) {
	tr := Transform{Translate: geom.Pt(10, 20), Scale: 2}
	tr.ZoomAt(geom.Pt(50, 50), 3)
	once := tr
	tr.ZoomAt(geom.Pt(50, 50), 3)
	assert.Equal(t, once, tr)
}

func TestZoomAtRejectsNonPositive(t *testing.T) {
	tr := Transform{Translate: geom.Pt(1, 2), Scale: 2}
	tr.ZoomAt(geom.Pt(5, 5), 0)
	tr.ZoomAt(geom.Pt(5, 5), -1)
	assert.Equal(t, Transform{Translate: geom.Pt(1, 2), Scale: 2}, tr)
}

func TestZoomStep(t *testing.T) {
	tr := New()
	tr.ZoomStep(geom.Pt(0, 0), false)
	assert.InDelta(t, 0.8, tr.Scale, 1e-12)
	tr.ZoomStep(geom.Pt(0, 0), true)
	assert.InDelta(t, 1.0, tr.Scale, 1e-12)
}

func TestFit(t *testing.T) {
	tr := Fit(geom.Pt(200, 100), geom.Pt(100, 100))
	assert.Equal(t, 0.5, tr.Scale)
	assert.Equal(t, geom.Pt(0, 25), tr.Translate)

	assert.Equal(t, Transform{Scale: 1}, Fit(geom.Pt(0, 0), geom.Pt(10, 10)))
}

func TestAssign(t *testing.T) {
	tr := New()
	tr.Assign(Transform{Translate: geom.Pt(3, 4), Scale: 0})
	assert.Equal(t, 1.0, tr.Scale)
	tr.Assign(Transform{Translate: geom.Pt(3, 4), Scale: 2})
	assert.Equal(t, Transform{Translate: geom.Pt(3, 4), Scale: 2}, *tr)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
