package exchange

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"

	"topomap/internal/georef"
)

// ParseWKT reads one WKT geometry in degrees. Points become map points,
// every segment of a line or polygon ring becomes a map line.
func ParseWKT(s string, meta *georef.MapMeta) (*Batch, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("wkt: %w", ErrEmpty)
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	b := newBatch(meta)
	if err := b.add(g, ""); err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	return b.done()
}
