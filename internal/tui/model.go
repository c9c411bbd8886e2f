package tui

import (
	"errors"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"topomap/internal/georef"
	"topomap/internal/interact"
	"topomap/internal/session"
	"topomap/internal/store"
	"topomap/internal/tiles"
	"topomap/internal/view"
)

const sidebarWidth = 34

type Options struct {
	Meta       georef.MapMeta
	Catalog    *georef.Catalog
	Store      store.Store
	StorageKey string
	Settings   interact.Settings
	Tiles      tiles.Provider
	Log        *logrus.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showProfile bool

	mgr   *interact.Manager
	out   *sink
	log   *logrus.Entry
	store store.Store
	key   string

	// fitted is set once the view has a transform, restored or fitted.
	fitted bool

	// mouse
	pressed  bool
	hovering bool

	// tiles
	provider   tiles.Provider
	tileLayout []tiles.Tile
	tilesReady bool

	// object sidebar
	l list.Model

	// height prompt
	ti textinput.Model

	// profile table of the selected line
	tbl table.Model

	// last rendered map size in cells
	mapW int
	mapH int
}

// New builds the model and restores the saved session, if any.
func New(opts Options) Model {
	out := &sink{status: "topomap ready"}
	meta := opts.Meta
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	mgr := interact.New(view.New(), &meta, out, log)
	mgr.Settings = opts.Settings
	mgr.Lines.OnChange = out.listChanged
	mgr.Points.OnChange = out.listChanged
	if mgr.Settings.DPR <= 0 {
		mgr.Settings.DPR = 1
	}

	m := Model{
		helpVisible: true,
		mgr:         mgr,
		out:         out,
		log:         log.WithField("component", "tui"),
		store:       opts.Store,
		key:         opts.StorageKey,
		provider:    opts.Tiles,
	}
	if m.provider == nil {
		m.provider = tiles.Grid{}
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Objects"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ti = textinput.New()
	m.ti.Placeholder = "height, e.g. 124.5"
	m.ti.CharLimit = 16
	m.ti.Width = 20

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	if m.store != nil && opts.Catalog != nil {
		r := &session.Restorer{Catalog: opts.Catalog, Log: log.WithField("component", "session")}
		pane, err := r.Restore(m.store, m.key, mgr)
		switch {
		case err == nil:
			m.fitted = true
			m.showSidebar = pane.Sidebar
			if pane.Unit != "" {
				if u, err := georef.ParseUnit(pane.Unit); err == nil {
					mgr.Settings.Unit = u
				}
			}
			out.status = "session restored"
		case errors.Is(err, session.ErrNoState):
		default:
			out.status = "could not restore session: " + err.Error()
		}
	}
	// no filter is applied yet, so the list has nothing to refilter
	_ = m.refreshObjects()
	return m
}

func (m Model) Init() tea.Cmd { return m.loadTiles() }

// Manager exposes the interaction state, for tests and the CLI.
func (m Model) Manager() *interact.Manager { return m.mgr }
