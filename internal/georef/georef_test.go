package georef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/geom"
)

func testMeta() MapMeta {
	return MapMeta{
		Name:         "t",
		DegP1:        geom.Pt(10, 50),
		DegP2:        geom.Pt(12, 49),
		PxP1:         geom.Pt(100, 100),
		PxP2:         geom.Pt(300, 200),
		OneMetreInPx: 0.5,
	}
}

func TestToDegrees(t *testing.T) {
	m := testMeta()
	assert.Equal(t, geom.Pt(10, 50), m.ToDegrees(geom.Pt(100, 100)))
	assert.Equal(t, geom.Pt(12, 49), m.ToDegrees(geom.Pt(300, 200)))

	mid := m.ToDegrees(geom.Pt(200, 150))
	assert.InDelta(t, 11.0, mid.X, 1e-12)
	assert.InDelta(t, 49.5, mid.Y, 1e-12)

	// axes are independent
	a := m.ToDegrees(geom.Pt(200, 0))
	b := m.ToDegrees(geom.Pt(200, 999))
	assert.Equal(t, a.X, b.X)
}

func TestToPixelsInverse(t *testing.T) {
	m := testMeta()
	for _, px := range []geom.Point{geom.Pt(0, 0), geom.Pt(123.4, 567.8), geom.Pt(-40, 2000)} {
		got := m.ToPixels(m.ToDegrees(px))
		assert.InDelta(t, px.X, got.X, 1e-9)
		assert.InDelta(t, px.Y, got.Y, 1e-9)
	}
}

func TestSetCopiesEverything(t *testing.T) {
	var m MapMeta
	other := testMeta()
	other.Cols = 3
	m.Set(other)
	assert.Equal(t, other, m)
}

func TestValidate(t *testing.T) {
	m := testMeta()
	require.NoError(t, m.Validate())

	bad := testMeta()
	bad.PxP2.X = bad.PxP1.X
	assert.ErrorIs(t, bad.Validate(), ErrDegenerate)

	bad = testMeta()
	bad.DegP2.Y = bad.DegP1.Y
	assert.ErrorIs(t, bad.Validate(), ErrDegenerate)

	bad = testMeta()
	bad.OneMetreInPx = 0
	assert.ErrorIs(t, bad.Validate(), ErrDegenerate)
}

func TestMetresAndUnits(t *testing.T) {
	m := testMeta()
	assert.Equal(t, 200.0, m.Metres(100))

	assert.Equal(t, "1500 m", UnitMetre.Format(1500))
	assert.Equal(t, "1.50 km", UnitKilometre.Format(1500))

	u, err := ParseUnit("verst=1066.8")
	require.NoError(t, err)
	assert.Equal(t, "verst", u.Name)
	assert.Equal(t, "2.00 verst", u.Format(2133.6))

	_, err = ParseUnit("furlongs")
	assert.Error(t, err)
	_, err = ParseUnit("x=-1")
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maps.yaml")
	doc := `
maps:
  - name: north
    degP1: {x: 1, y: 2}
    degP2: {x: 3, y: 1}
    pxP1: {x: 0, y: 0}
    pxP2: {x: 1000, y: 500}
    oneMetreInPx: 0.1
    tileW: 250
    tileH: 250
    cols: 4
    rows: 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "north", c.Default)

	m, err := c.Lookup("north")
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(1000, 500), m.Size())

	_, err = c.Lookup("south")
	assert.ErrorIs(t, err, ErrUnknownMap)
}

func TestLoadCatalogRejectsDegenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	doc := `
maps:
  - name: flat
    degP1: {x: 1, y: 2}
    degP2: {x: 1, y: 1}
    pxP1: {x: 0, y: 0}
    pxP2: {x: 10, y: 10}
    oneMetreInPx: 1
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	_, err := LoadCatalog(path)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestBuiltinIsValid(t *testing.T) {
	for _, m := range Builtin.Maps {
		assert.NoError(t, m.Validate())
	}
	_, err := Builtin.Lookup(Builtin.Default)
	assert.NoError(t, err)
}

func TestUnitSpecRoundTrip(t *testing.T) {
	for _, spec := range []string{"m", "km", "verst=1066.8"} {
		u, err := ParseUnit(spec)
		require.NoError(t, err)
		assert.Equal(t, spec, u.Spec())
		back, err := ParseUnit(u.Spec())
		require.NoError(t, err)
		assert.Equal(t, u, back)
	}
}
