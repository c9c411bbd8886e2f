package exchange

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"topomap/internal/georef"
)

// ParseCSV reads points from a CSV with a header row.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x, plus an
// optional name|label column (case-insensitive). Rows that do not parse
// are skipped.
func ParseCSV(r io.Reader, meta *georef.MapMeta) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxLat, idxLon, idxName := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "name", "label":
			if idxName == -1 {
				idxName = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	b := newBatch(meta)
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		var name string
		if idxName >= 0 && idxName < len(row) {
			name = strings.TrimSpace(row[idxName])
		}
		_ = b.add(orb.Point{lon, lat}, name)
	}
	if b.Len() == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return b, nil
}
