package georef

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"topomap/internal/geom"
)

var ErrUnknownMap = errors.New("unknown map")

// Catalog holds the calibration records of every known map.
type Catalog struct {
	Default string    `yaml:"default"`
	Maps    []MapMeta `yaml:"maps"`
}

// Builtin is used when no catalog file is configured.
var Builtin = Catalog{
	Default: "demo",
	Maps: []MapMeta{{
		Name:         "demo",
		Title:        "Demo sheet 1:50000",
		DegP1:        geom.Pt(30.0, 60.0),
		DegP2:        geom.Pt(30.5, 59.75),
		PxP1:         geom.Pt(0, 0),
		PxP2:         geom.Pt(4096, 4096),
		OneMetreInPx: 0.2,
		TileW:        512,
		TileH:        512,
		Cols:         8,
		Rows:         8,
	}},
}

// LoadCatalog reads a YAML catalog. Records with degenerate calibration
// are rejected.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(c.Maps) == 0 {
		return nil, fmt.Errorf("catalog %s: no maps", path)
	}
	for i := range c.Maps {
		if err := c.Maps[i].Validate(); err != nil {
			return nil, err
		}
	}
	if c.Default == "" {
		c.Default = c.Maps[0].Name
	}
	return &c, nil
}

func (c *Catalog) Lookup(name string) (MapMeta, error) {
	for _, m := range c.Maps {
		if m.Name == name {
			return m, nil
		}
	}
	return MapMeta{}, fmt.Errorf("%w: %s", ErrUnknownMap, name)
}

func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.Maps))
	for _, m := range c.Maps {
		out = append(out, m.Name)
	}
	sort.Strings(out)
	return out
}
