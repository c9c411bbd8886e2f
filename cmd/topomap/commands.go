package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"topomap/internal/exchange"
	"topomap/internal/georef"
	"topomap/internal/interact"
	"topomap/internal/session"
	"topomap/internal/tui"
	"topomap/internal/view"
)

// headless stands in for the terminal when commands replay a session.
// Height prompts are declined.
type headless struct {
	log *logrus.Entry
}

func (h headless) Status(msg string) { h.log.Debug(msg) }
func (headless) Redraw()             {}

func (headless) PromptHeight(_ string, done func(float64, bool)) { done(0, false) }

func (a *app) settings() (interact.Settings, error) {
	s := interact.DefaultSettings()
	s.Snap = a.cfg.Snap
	if a.cfg.HoverDistance > 0 {
		s.HoverDistance = a.cfg.HoverDistance
	}
	u, err := georef.ParseUnit(a.cfg.Unit)
	if err != nil {
		return s, err
	}
	s.Unit = u
	return s, nil
}

// load restores the saved session into a manager with no terminal attached.
func (a *app) load() (*interact.Manager, session.PaneState, error) {
	meta, err := a.meta()
	if err != nil {
		return nil, session.PaneState{}, err
	}
	set, err := a.settings()
	if err != nil {
		return nil, session.PaneState{}, err
	}
	s, err := a.openStore()
	if err != nil {
		return nil, session.PaneState{}, err
	}
	m := interact.New(view.New(), &meta, headless{a.log.WithField("component", "headless")}, a.log)
	m.Settings = set

	r := &session.Restorer{Catalog: a.catalog, Log: a.log.WithField("component", "session")}
	pane, err := r.Restore(s, a.cfg.StorageKey, m)
	switch {
	case errors.Is(err, session.ErrNoState):
		return m, session.PaneState{Unit: set.Unit.Spec()}, nil
	case err != nil:
		return nil, session.PaneState{}, err
	}
	if pane.Unit != "" {
		if u, err := georef.ParseUnit(pane.Unit); err == nil {
			m.Settings.Unit = u
		}
	}
	return m, pane, nil
}

type RunCmd struct{}

func (c *RunCmd) Run(a *app) error {
	meta, err := a.meta()
	if err != nil {
		return err
	}
	set, err := a.settings()
	if err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	a.log.WithField("map", meta.Name).Info("starting terminal UI")
	return tui.Run(tui.Options{
		Meta:       meta,
		Catalog:    a.catalog,
		Store:      s,
		StorageKey: a.cfg.StorageKey,
		Settings:   set,
		Log:        a.log,
	})
}

type ExportCmd struct {
	Format string `short:"f" enum:"table,csv,markdown,geojson" default:"table" help:"output format (table, csv, markdown, geojson)"`
	Output string `short:"o" default:"-" help:"file to write, - for stdout"`
}

func (c *ExportCmd) Run(a *app) error {
	m, _, err := a.load()
	if err != nil {
		return err
	}
	return a.write(c.Output, func(w io.Writer) error {
		if c.Format == "geojson" {
			b, err := json.MarshalIndent(exchange.GeoJSON(m.Lines.Items(), m.Points.Items(), m.Meta), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(b))
			return err
		}
		f, err := exchange.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		return exchange.WriteObjects(w, m.Lines.Items(), m.Points.Items(), m.Meta, m.Settings.Unit, f)
	})
}

type ProfileCmd struct {
	Line   int    `arg:"" help:"line number as listed by export"`
	Format string `short:"f" enum:"table,csv,markdown" default:"table" help:"output format (table, csv, markdown)"`
}

func (c *ProfileCmd) Run(a *app) error {
	m, _, err := a.load()
	if err != nil {
		return err
	}
	if c.Line < 1 || c.Line > m.Lines.Len() {
		return fmt.Errorf("no line %d, the session has %d", c.Line, m.Lines.Len())
	}
	f, err := exchange.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	return exchange.WriteProfile(a.out, m.Lines.At(c.Line-1), m.Meta, m.Settings.Unit, f)
}

type ImportCmd struct {
	Format string `short:"f" help:"input format (wkt, csv, geojson), guessed from the file extension when empty"`
	File   string `arg:"" help:"file to read, - for stdin"`
}

func (c *ImportCmd) format() (string, error) {
	switch c.Format {
	case "wkt", "csv", "geojson":
		return c.Format, nil
	case "":
	default:
		return "", fmt.Errorf("unknown import format %q", c.Format)
	}
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".wkt", ".txt":
		return "wkt", nil
	case ".csv":
		return "csv", nil
	case ".geojson", ".json":
		return "geojson", nil
	}
	return "", fmt.Errorf("cannot guess the format of %q, pass --format", c.File)
}

func (c *ImportCmd) Run(a *app) error {
	format, err := c.format()
	if err != nil {
		return err
	}
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	m, pane, err := a.load()
	if err != nil {
		return err
	}

	var b *exchange.Batch
	switch format {
	case "wkt":
		b, err = exchange.ParseWKT(string(data), m.Meta)
	case "csv":
		b, err = exchange.ParseCSV(bytes.NewReader(data), m.Meta)
	case "geojson":
		b, err = exchange.ParseGeoJSON(data, m.Meta)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", c.File, err)
	}
	b.Apply(m)

	s, err := a.openStore()
	if err != nil {
		return err
	}
	if err := session.Save(s, a.cfg.StorageKey, m, pane); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"file":   c.File,
		"format": format,
		"lines":  len(b.Lines),
		"points": len(b.Points),
	}).Info("annotations imported")
	_, err = fmt.Fprintf(a.out, "imported %d lines and %d points into %s\n", len(b.Lines), len(b.Points), m.Meta.Name)
	return err
}

type MapsCmd struct {
	Format string `short:"f" enum:"table,csv,markdown" default:"table" help:"output format (table, csv, markdown)"`
}

func (c *MapsCmd) Run(a *app) error {
	f, err := exchange.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	return exchange.WriteCatalog(a.out, a.catalog, f)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func (a *app) write(path string, fn func(io.Writer) error) error {
	if path == "-" || path == "" {
		return fn(a.out)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
