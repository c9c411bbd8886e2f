package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"topomap/internal/geom"
	"topomap/internal/interact"
	"topomap/internal/session"
	"topomap/internal/tiles"
	"topomap/internal/view"
)

// panStep is how far one arrow key moves the view, in micro-pixels.
const panStep = 16

type tilesMsg struct {
	tiles []tiles.Tile
	err   error
}

func (m Model) loadTiles() tea.Cmd {
	meta := *m.mgr.Meta
	p := m.provider
	return func() tea.Msg {
		var got []tiles.Tile
		err := p.Load(meta, func(t tiles.Tile, _, _ int) { got = append(got, t) }, nil)
		return tilesMsg{tiles: got, err: err}
	}
}

// layout is the screen split shared by Update (mouse hit testing) and View.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	headerHeight := 1
	footerHeight := 2
	lay := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	lay.mapX = sw
	lay.mapW = max(10, lay.contentW-sw)
	lay.mapH = lay.contentH
	return lay
}

func (m Model) viewport() geom.Point {
	return geom.Pt(float64(m.mapW*2), float64(m.mapH*4))
}

func (m *Model) fit() {
	if m.mapW <= 0 || m.mapH <= 0 {
		return
	}
	m.mgr.Transform.Assign(view.Fit(m.mgr.Meta.Size(), m.viewport()))
	m.fitted = true
}

func (m *Model) resize() {
	lay := m.layout()
	m.mapW, m.mapH = lay.mapW, lay.mapH
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
}

func (m *Model) save() {
	if m.store == nil {
		return
	}
	pane := session.PaneState{Sidebar: m.showSidebar, Unit: m.mgr.Settings.Unit.Spec()}
	if err := session.Save(m.store, m.key, m.mgr, pane); err != nil {
		m.log.WithError(err).Error("save failed")
		m.out.status = "save failed: " + err.Error()
		return
	}
	m.out.status = "saved"
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if !m.fitted {
			m.fit()
		}
	case tilesMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("tile layout unavailable")
			m.out.status = "tiles: " + msg.err.Error()
			break
		}
		m.tileLayout = msg.tiles
		m.tilesReady = true
		m.log.WithField("tiles", len(msg.tiles)).Debug("tiles loaded")
	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.out.done != nil && !m.ti.Focused() {
		m.ti.SetValue("")
		cmds = append(cmds, m.ti.Focus())
	}
	if m.out.dirty || m.out.members {
		m.out.dirty = false
		cmds = append(cmds, m.refreshObjects())
		if m.showProfile {
			m.refreshProfile()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// height prompt owns the keyboard while open
	if m.out.done != nil {
		switch msg.String() {
		case "esc":
			m.ti.Blur()
			m.out.answer(0, false)
			return nil, false
		case "enter":
			h, ok := interact.ParseHeight(m.ti.Value())
			m.ti.Blur()
			m.out.answer(h, ok)
			return nil, false
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return cmd, false
	}
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd, false
	}
	if m.showProfile {
		switch msg.String() {
		case "esc", "a":
			m.showProfile = false
			return nil, false
		case "up", "down", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return cmd, false
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.save()
		return nil, true
	case "w":
		m.save()
	case "l":
		m.mgr.SelectTool(interact.ToolLine)
	case "p":
		m.mgr.SelectTool(interact.ToolPoint)
	case "t":
		m.mgr.SelectTool(interact.ToolTopo)
	case "esc":
		m.mgr.Key(interact.KeyEscape)
	case "delete", "x", "backspace":
		m.mgr.Key(interact.KeyDelete)
	case "u", "ctrl+z":
		m.mgr.Key(interact.KeyUndo)
	case "r", "ctrl+y":
		m.mgr.Key(interact.KeyRedo)
	case "v":
		m.mgr.Key(interact.KeyReverse)
	case "]":
		m.mgr.Key(interact.KeyMoreDivisions)
	case "[":
		m.mgr.Key(interact.KeyFewerDivisions)
	case "s":
		m.mgr.Key(interact.KeyToggleSnap)
	case "+", "=":
		m.mgr.ZoomButton(m.viewport(), true)
		m.out.status = fmt.Sprintf("zoom: %.3fx", m.mgr.Transform.Scale)
	case "-", "_":
		m.mgr.ZoomButton(m.viewport(), false)
		m.out.status = fmt.Sprintf("zoom: %.3fx", m.mgr.Transform.Scale)
	case "f":
		m.fit()
		m.out.status = "fit to window"
	case "left":
		m.mgr.Pan(geom.Pt(panStep, 0))
	case "right":
		m.mgr.Pan(geom.Pt(-panStep, 0))
	case "up", "down":
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			m.hoverSelectedItem()
			return cmd, false
		}
		d := float64(panStep)
		if msg.String() == "down" {
			d = -d
		}
		m.mgr.Pan(geom.Pt(0, d))
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(objectItem); ok {
				m.mgr.SelectObject(it.obj, false)
			}
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		m.resize()
		if m.showSidebar {
			return m.refreshObjects(), false
		}
	case "a":
		m.showProfile = true
		m.refreshProfile()
	case "h":
		m.helpVisible = !m.helpVisible
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return cmd, false
		}
	}
	return nil, false
}

// handleMouse turns terminal cells into micro-pixel pointer events. The
// pointer sits at the centre of the cell.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	inside := cx >= 0 && cx < lay.mapW && cy >= 0 && cy < lay.mapH
	s := geom.Pt(float64(cx*2+1), float64(cy*4+2))

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if inside {
			m.mgr.Wheel(s, true)
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if inside {
			m.mgr.Wheel(s, false)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside && m.out.done == nil {
			m.pressed = true
			m.mgr.PointerDown(s)
		}
	case msg.Action == tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.mgr.PointerUp(s, msg.Shift)
		}
	case msg.Action == tea.MouseActionMotion:
		if inside || m.pressed {
			m.mgr.PointerMove(s)
		}
	}
	m.hovering = inside
}
