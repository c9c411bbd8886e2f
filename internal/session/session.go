// Package session saves and restores the editing state as one JSON blob.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"topomap/internal/georef"
	"topomap/internal/interact"
	"topomap/internal/mapobj"
	"topomap/internal/store"
	"topomap/internal/style"
	"topomap/internal/view"
)

var (
	ErrNoState = errors.New("no saved state")
	ErrCorrupt = errors.New("saved state is not valid JSON")
)

// PaneState is the frontend layout that travels with the session.
type PaneState struct {
	Sidebar bool   `json:"sidebar"`
	Unit    string `json:"unit,omitempty"`
}

type Settings struct {
	Map       string    `json:"map"`
	Snap      bool      `json:"snap"`
	PaneState PaneState `json:"paneState"`
}

type LineGroup struct {
	GlobalStyle *style.Table        `json:"globalStyle"`
	List        []mapobj.LineRecord `json:"list"`
}

type PointGroup struct {
	GlobalStyle *style.Table         `json:"globalStyle"`
	List        []mapobj.PointRecord `json:"list"`
}

// State is the persisted document.
type State struct {
	Map      string         `json:"map"`
	PosState view.Transform `json:"posState"`
	Settings Settings       `json:"settings"`
	Lines    LineGroup      `json:"lines"`
	Points   PointGroup     `json:"points"`
}

// Capture snapshots the manager into a State.
func Capture(m *interact.Manager, pane PaneState) State {
	st := State{
		Map:      m.Meta.Name,
		PosState: *m.Transform,
		Settings: Settings{Map: m.Meta.Name, Snap: m.Settings.Snap, PaneState: pane},
		Lines:    LineGroup{GlobalStyle: m.Lines.GroupStyle().Clone(), List: []mapobj.LineRecord{}},
		Points:   PointGroup{GlobalStyle: m.Points.GroupStyle().Clone(), List: []mapobj.PointRecord{}},
	}
	for _, ln := range m.Lines.Items() {
		st.Lines.List = append(st.Lines.List, ln.Record())
	}
	for _, pt := range m.Points.Items() {
		st.Points.List = append(st.Points.List, pt.Record())
	}
	return st
}

// Save writes the manager state under key.
func Save(s store.Store, key string, m *interact.Manager, pane PaneState) error {
	b, err := json.Marshal(Capture(m, pane))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.Set(key, string(b)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Restorer applies saved state to a manager.
type Restorer struct {
	Catalog *georef.Catalog
	Log     *logrus.Entry
}

// Restore loads key and applies it to m. Missing top-level keys keep the
// current values. Nothing is applied unless every present key decodes.
func (r *Restorer) Restore(s store.Store, key string, m *interact.Manager) (PaneState, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		r.Log.WithError(err).Warn("session load failed")
		return PaneState{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return PaneState{}, ErrNoState
	}
	pane, err := r.RestoreJSON(raw, m)
	if err != nil {
		r.Log.WithError(err).Warn("session restore abandoned")
	}
	return pane, err
}

type pending struct {
	meta     *georef.MapMeta
	pos      *view.Transform
	settings *Settings
	lineSt   *style.Table
	lines    []*mapobj.Line
	hasLines bool
	pointSt  *style.Table
	points   []*mapobj.Point
	hasPts   bool
}

// RestoreJSON applies a serialized State to m.
func (r *Restorer) RestoreJSON(raw string, m *interact.Manager) (PaneState, error) {
	if !gjson.Valid(raw) {
		return PaneState{}, ErrCorrupt
	}
	doc := gjson.Parse(raw)
	var p pending

	if v, ok := field(doc, "map"); ok {
		meta, err := r.Catalog.Lookup(v.String())
		if err != nil {
			return PaneState{}, fmt.Errorf("map: %w", err)
		}
		p.meta = &meta
	}
	if v, ok := field(doc, "posState"); ok {
		var tr view.Transform
		if err := json.Unmarshal([]byte(v.Raw), &tr); err != nil {
			return PaneState{}, fmt.Errorf("posState: %w", err)
		}
		if tr.Scale <= 0 {
			return PaneState{}, fmt.Errorf("posState: scale %g is not positive", tr.Scale)
		}
		p.pos = &tr
	}
	if v, ok := field(doc, "settings"); ok {
		var st Settings
		if err := json.Unmarshal([]byte(v.Raw), &st); err != nil {
			return PaneState{}, fmt.Errorf("settings: %w", err)
		}
		p.settings = &st
	}
	if v, ok := field(doc, "lines"); ok {
		var g LineGroup
		if err := json.Unmarshal([]byte(v.Raw), &g); err != nil {
			return PaneState{}, fmt.Errorf("lines: %w", err)
		}
		p.hasLines = true
		p.lineSt = g.GlobalStyle
		for _, rec := range g.List {
			p.lines = append(p.lines, mapobj.LineFromRecord(rec))
		}
	}
	if v, ok := field(doc, "points"); ok {
		var g PointGroup
		if err := json.Unmarshal([]byte(v.Raw), &g); err != nil {
			return PaneState{}, fmt.Errorf("points: %w", err)
		}
		p.hasPts = true
		p.pointSt = g.GlobalStyle
		for _, rec := range g.List {
			p.points = append(p.points, mapobj.PointFromRecord(rec))
		}
	}

	return p.apply(m), nil
}

// field treats an explicit null like a missing key.
func field(doc gjson.Result, key string) (gjson.Result, bool) {
	v := doc.Get(key)
	return v, v.Exists() && v.Type != gjson.Null
}

func (p *pending) apply(m *interact.Manager) PaneState {
	var pane PaneState
	if p.meta != nil {
		m.Meta.Set(*p.meta)
	}
	if p.pos != nil {
		m.Transform.Assign(*p.pos)
	}
	if p.settings != nil {
		m.Settings.Snap = p.settings.Snap
		pane = p.settings.PaneState
	}
	if p.hasLines {
		if p.lineSt != nil {
			m.Lines.SetGroupStyle(p.lineSt)
		}
		m.Lines.Replace(p.lines)
	}
	if p.hasPts {
		if p.pointSt != nil {
			m.Points.SetGroupStyle(p.pointSt)
		}
		m.Points.Replace(p.points)
	}
	m.History.Clear()
	return pane
}
