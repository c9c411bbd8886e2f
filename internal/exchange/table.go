package exchange

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"topomap/internal/georef"
	"topomap/internal/mapobj"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatCSV, FormatMarkdown:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

func newWriter(header table.Row) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(header)
	return w
}

func render(out io.Writer, w table.Writer, f Format) error {
	var s string
	switch f {
	case FormatCSV:
		s = w.RenderCSV()
	case FormatMarkdown:
		s = w.RenderMarkdown()
	default:
		s = w.Render()
	}
	_, err := fmt.Fprintln(out, s)
	return err
}

// WriteObjects lists every annotation with its degree coordinates.
func WriteObjects(out io.Writer, lines []*mapobj.Line, points []*mapobj.Point, meta *georef.MapMeta, unit georef.Unit, f Format) error {
	w := newWriter(table.Row{"#", "KIND", "NAME", "LON1", "LAT1", "LON2", "LAT2", "LENGTH", "PROFILE"})
	n := 0
	for _, ln := range lines {
		n++
		a, b := meta.ToDegrees(ln.L.P1), meta.ToDegrees(ln.L.P2)
		w.AppendRow(table.Row{n, "line", "", deg(a.X), deg(a.Y), deg(b.X), deg(b.Y), unit.Format(ln.Length(meta)), ln.Profile.Len()})
	}
	for _, pt := range points {
		n++
		a := meta.ToDegrees(pt.Pos())
		w.AppendRow(table.Row{n, "point", pt.Name, deg(a.X), deg(a.Y), "", "", "", ""})
	}
	return render(out, w, f)
}

// WriteProfile lists the elevation samples of one line.
func WriteProfile(out io.Writer, ln *mapobj.Line, meta *georef.MapMeta, unit georef.Unit, f Format) error {
	w := newWriter(table.Row{"#", "POSITION", "DISTANCE", "HEIGHT"})
	for i, pp := range ln.Profile.Items() {
		w.AppendRow(table.Row{i + 1, fmt.Sprintf("%.4f", pp.Position), unit.Format(pp.Distance(meta)), pp.Height})
	}
	return render(out, w, f)
}

// WriteCatalog lists the calibrated maps.
func WriteCatalog(out io.Writer, c *georef.Catalog, f Format) error {
	w := newWriter(table.Row{"NAME", "TITLE", "DEFAULT", "SIZE PX", "TILES", "PX/M"})
	for _, m := range c.Maps {
		def := ""
		if m.Name == c.Default {
			def = "*"
		}
		size := m.Size()
		w.AppendRow(table.Row{m.Name, m.Title, def, fmt.Sprintf("%.0fx%.0f", size.X, size.Y), fmt.Sprintf("%dx%d", m.Cols, m.Rows), m.OneMetreInPx})
	}
	return render(out, w, f)
}

func deg(v float64) string { return fmt.Sprintf("%.6f", v) }
