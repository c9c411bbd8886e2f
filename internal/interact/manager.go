// Package interact turns pointer and keyboard input into edits of the
// annotation lists: tool modes, snapping, selection, panning and zooming.
package interact

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/history"
	"topomap/internal/mapobj"
	"topomap/internal/objlist"
	"topomap/internal/style"
	"topomap/internal/view"
)

// Output is where the manager reports to the user.
type Output interface {
	Status(msg string)
	// PromptHeight asks for a height value. done gets ok=false when the
	// prompt was cancelled or the input was not a number.
	PromptHeight(prompt string, done func(h float64, ok bool))
	Redraw()
}

type Settings struct {
	Snap          bool
	HoverDistance float64 // screen pixels before DPR scaling
	DPR           float64
	Unit          georef.Unit
}

func DefaultSettings() Settings {
	return Settings{Snap: true, HoverDistance: 6, DPR: 1, Unit: georef.UnitMetre}
}

// Pointer is the live cursor state.
type Pointer struct {
	Screen geom.Point // raw cursor
	Canvas geom.Point // cursor in canvas space
	Snap   geom.Point // canvas point tools consume

	down          bool
	dragging      bool
	downAt        geom.Point
	downTranslate geom.Point
}

type lineTool struct {
	p1    geom.Point
	draft *mapobj.Line
}

type topoTool struct {
	line *mapobj.Line
}

// Manager owns the click-mode state machine. Every handler finishes with
// a redraw request once all state changes for the event are done.
type Manager struct {
	Transform *view.Transform
	Meta      *georef.MapMeta
	Lines     *objlist.List[*mapobj.Line]
	Points    *objlist.List[*mapobj.Point]
	History   *history.Manager
	Settings  Settings

	out     Output
	log     *logrus.Entry
	mode    Mode
	ptr     Pointer
	line    lineTool
	topo    topoTool
	hovered mapobj.Object
}

func New(tr *view.Transform, meta *georef.MapMeta, out Output, log *logrus.Logger) *Manager {
	lineStyle, pointStyle := style.DefaultLines(), style.DefaultPoints()
	m := &Manager{
		Transform: tr,
		Meta:      meta,
		Lines:     objlist.New[*mapobj.Line](&lineStyle),
		Points:    objlist.New[*mapobj.Point](&pointStyle),
		History:   history.New(),
		Settings:  DefaultSettings(),
		out:       out,
		log:       log.WithField("component", "interact"),
	}
	m.History.OnApply = func(history.Action) { m.out.Redraw() }
	return m
}

func (m *Manager) Mode() Mode { return m.mode }

func (m *Manager) Pointer() Pointer { return m.ptr }

// Draft is the line being placed, or nil.
func (m *Manager) Draft() *mapobj.Line { return m.line.draft }

// TopoLine is the line receiving profile points, or nil.
func (m *Manager) TopoLine() *mapobj.Line { return m.topo.line }

// Hovered is the object under the cursor, or nil.
func (m *Manager) Hovered() mapobj.Object { return m.hovered }

func (m *Manager) threshold() float64 {
	dpr := m.Settings.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return m.Settings.HoverDistance * dpr
}

func (m *Manager) dragThreshold() float64 {
	dpr := m.Settings.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return 2*dpr + 2
}

// SelectTool activates a tool, discarding any tool in progress.
func (m *Manager) SelectTool(t Tool) {
	m.reset()
	switch t {
	case ToolLine:
		m.mode = ModeLineP1
		m.out.Status("line: click the first point")
	case ToolPoint:
		m.mode = ModePoint
		m.out.Status("point: click to place")
	case ToolTopo:
		m.enterTopo()
	}
	m.out.Redraw()
}

func (m *Manager) enterTopo() {
	active := m.Lines.GetState(style.StateActive, true)
	if len(active) != 1 {
		m.mode = ModeSelectTopoLine
		m.out.Status("profile: select exactly one line")
		return
	}
	m.topo.line = active[0]
	m.mode = ModeTopoPoint
	m.out.Status("profile: click on the line to add a height, esc to finish")
}

func (m *Manager) reset() {
	m.mode = ModeIdle
	m.line = lineTool{}
	m.topo = topoTool{}
}

// PointerDown starts a click or a drag.
func (m *Manager) PointerDown(s geom.Point) {
	m.ptr.down = true
	m.ptr.dragging = false
	m.ptr.downAt = s
	m.ptr.downTranslate = m.Transform.Translate
	m.updatePointer(s)
	m.out.Redraw()
}

// PointerMove tracks the cursor, pans while dragging and updates hover and snapping.
func (m *Manager) PointerMove(s geom.Point) {
	if m.ptr.down && !m.ptr.dragging && s.Dist(m.ptr.downAt) > m.dragThreshold() {
		m.ptr.dragging = true
	}
	if m.ptr.dragging {
		m.Transform.Translate = m.ptr.downTranslate.Add(s.Sub(m.ptr.downAt))
	}
	m.updatePointer(s)
	m.out.Redraw()
}

// PointerUp finishes a click. The release that ends a drag does nothing else.
func (m *Manager) PointerUp(s geom.Point, shift bool) {
	wasDrag := m.ptr.dragging
	m.ptr.down = false
	m.ptr.dragging = false
	m.updatePointer(s)
	if !wasDrag {
		m.click(shift)
		m.updatePointer(s)
	}
	m.out.Redraw()
}

// Click is PointerDown followed by PointerUp at the same spot.
func (m *Manager) Click(s geom.Point, shift bool) {
	m.PointerDown(s)
	m.PointerUp(s, shift)
}

func (m *Manager) updatePointer(s geom.Point) {
	m.ptr.Screen = s
	m.ptr.Canvas = m.Transform.ToCanvas(s)
	m.ptr.Snap = m.ptr.Canvas
	if m.ptr.dragging {
		return
	}
	m.setHover(m.objectAt(s))
	if m.Settings.Snap && m.hovered != nil {
		m.ptr.Snap = m.hovered.SnapTarget(m.ptr.Canvas)
	}
	if m.mode == ModeLineP2 && m.line.draft != nil {
		m.line.draft.L.P2 = m.ptr.Snap
	}
}

// objectAt finds the object under screen point s. Points win over profile
// markers, which win over lines; within a list the first member wins.
func (m *Manager) objectAt(s geom.Point) mapobj.Object {
	thr := m.threshold()
	if pt, ok := m.Points.First(s, thr, m.Transform); ok {
		return pt
	}
	for _, ln := range m.Lines.Items() {
		if pp, ok := ln.Profile.First(s, thr, m.Transform); ok {
			return pp
		}
	}
	if ln, ok := m.Lines.First(s, thr, m.Transform); ok {
		return ln
	}
	return nil
}

func (m *Manager) setHover(o mapobj.Object) {
	m.Points.SetState(style.StateHover, false)
	for _, ln := range m.Lines.Items() {
		ln.Profile.SetState(style.StateHover, false)
	}
	m.Lines.SetState(style.StateHover, false)
	m.hovered = o
	if o != nil {
		o.Flags().Hover = true
	}
}

func (m *Manager) click(shift bool) {
	snap := m.ptr.Snap
	switch m.mode {
	case ModeLineP1:
		m.line.p1 = snap
		m.line.draft = mapobj.NewLine(geom.Ln(snap, snap))
		m.line.draft.SetGroupStyle(m.Lines.GroupStyle())
		m.mode = ModeLineP2
		m.out.Status("line: click the second point")
	case ModeLineP2:
		ln := mapobj.NewLine(geom.Ln(m.line.p1, snap))
		m.clearSelection()
		ln.Flags().Active = true
		m.History.Track(m.Lines, func() { m.Lines.Add(ln) })
		m.log.WithField("line", ln.L).Debug("line added")
		m.reset()
		m.out.Status(fmt.Sprintf("line added, %s", m.Settings.Unit.Format(ln.Length(m.Meta))))
	case ModePoint:
		pt := mapobj.NewPoint(snap)
		m.History.Track(m.Points, func() { m.Points.Add(pt) })
		m.log.WithField("point", pt.Pos()).Debug("point added")
		m.reset()
		d := m.Meta.ToDegrees(snap)
		m.out.Status(fmt.Sprintf("point added at %.5f, %.5f", d.X, d.Y))
	case ModeSelectTopoLine:
		ln, ok := m.Lines.First(m.ptr.Screen, m.threshold(), m.Transform)
		if !ok {
			m.out.Status("profile: no line here")
			return
		}
		m.clearSelection()
		ln.Flags().Active = true
		m.enterTopo()
	case ModeTopoPoint:
		m.addProfilePoint(m.topo.line, snap)
	default:
		m.selectAt(shift)
	}
}

func (m *Manager) addProfilePoint(ln *mapobj.Line, at geom.Point) {
	if ln == nil {
		m.reset()
		return
	}
	pos := geom.Clamp01(ln.L.Scalar(at))
	prompt := fmt.Sprintf("height at %s", m.Settings.Unit.Format(m.Meta.Metres(ln.L.Len()*pos)))
	m.out.PromptHeight(prompt, func(h float64, ok bool) {
		if !ok {
			m.out.Status("profile: no height entered")
			m.out.Redraw()
			return
		}
		if m.Lines.Index(ln) < 0 {
			m.out.Status("profile: line no longer exists")
			m.out.Redraw()
			return
		}
		m.History.Track(ln.Profile.List, func() { ln.Profile.AddAt(pos, h) })
		m.out.Status(fmt.Sprintf("profile point %g added (%d on line)", h, ln.Profile.Len()))
		m.out.Redraw()
	})
}

func (m *Manager) selectAt(shift bool) {
	o := m.objectAt(m.ptr.Screen)
	if o == nil {
		if !shift {
			m.clearSelection()
		}
		return
	}
	m.toggle(o, shift)
}

// SelectObject toggles o the way a click on it does. The object panel uses it.
func (m *Manager) SelectObject(o mapobj.Object, shift bool) {
	m.toggle(o, shift)
	m.out.Redraw()
}

// HoverObject highlights o, or nothing when o is nil.
func (m *Manager) HoverObject(o mapobj.Object) {
	m.setHover(o)
	m.out.Redraw()
}

func (m *Manager) toggle(o mapobj.Object, shift bool) {
	was := o.Flags().Active
	if !shift {
		m.clearSelection()
	}
	o.Flags().Active = !was
	// a selected profile point keeps its line selected so Delete reaches it
	if pp, ok := o.(*mapobj.ProfilePoint); ok && !was && !shift {
		pp.Line().Flags().Active = true
	}
}

func (m *Manager) clearSelection() {
	m.Points.SetState(style.StateActive, false)
	for _, ln := range m.Lines.Items() {
		ln.Profile.SetState(style.StateActive, false)
	}
	m.Lines.SetState(style.StateActive, false)
}

// Key handles a keyboard command.
func (m *Manager) Key(k Key) {
	switch k {
	case KeyEscape:
		m.reset()
		m.out.Status("ready")
	case KeyDelete:
		m.deleteSelection()
	case KeyUndo:
		m.report("undo", m.History.Undo())
	case KeyRedo:
		m.report("redo", m.History.Redo())
	case KeyReverse:
		for _, ln := range m.Lines.GetState(style.StateActive, true) {
			ln.Reverse()
		}
	case KeyMoreDivisions, KeyFewerDivisions:
		d := 1
		if k == KeyFewerDivisions {
			d = -1
		}
		for _, ln := range m.Lines.GetState(style.StateActive, true) {
			ln.SetDivisions(ln.Divisions + d)
		}
	case KeyToggleSnap:
		m.Settings.Snap = !m.Settings.Snap
		m.out.Status(fmt.Sprintf("snap: %v", m.Settings.Snap))
	}
	m.out.Redraw()
}

func (m *Manager) report(what string, err error) {
	switch {
	case err == nil:
		m.out.Status(what)
	case errors.Is(err, history.ErrEmpty):
		m.out.Status("nothing to " + what)
	default:
		m.log.WithError(err).Warn(what + " failed")
		m.out.Status(err.Error())
	}
	// a restored membership may no longer contain the lines the tools refer to
	if m.topo.line != nil && m.Lines.Index(m.topo.line) < 0 {
		m.reset()
	}
	m.setHover(nil)
}

// deleteSelection removes the active profile points of the single active
// line, or else all active lines and points.
func (m *Manager) deleteSelection() {
	active := m.Lines.GetState(style.StateActive, true)
	if len(active) == 1 {
		ln := active[0]
		if n := ln.Profile.CountState(style.StateActive, true); n > 0 {
			m.History.Track(ln.Profile.List, func() { ln.Profile.DeleteState(style.StateActive, true) })
			m.out.Status(fmt.Sprintf("deleted %d profile points", n))
			return
		}
	}
	var lines, points int
	m.History.TrackAll(func() {
		lines = len(m.Lines.DeleteState(style.StateActive, true))
		points = len(m.Points.DeleteState(style.StateActive, true))
	}, m.Lines, m.Points)
	if m.topo.line != nil && m.Lines.Index(m.topo.line) < 0 {
		m.reset()
	}
	m.setHover(nil)
	m.out.Status(fmt.Sprintf("deleted %d lines, %d points", lines, points))
}

// Wheel zooms one step about the cursor.
func (m *Manager) Wheel(s geom.Point, in bool) {
	m.Transform.ZoomStep(s, in)
	m.updatePointer(s)
	m.out.Redraw()
}

// ZoomButton zooms one step about the centre of a viewport of the given size.
func (m *Manager) ZoomButton(viewport geom.Point, in bool) {
	m.Transform.ZoomStep(viewport.Mul(0.5), in)
	m.updatePointer(m.ptr.Screen)
	m.out.Redraw()
}

// Pan shifts the view by a screen delta, as the arrow keys do.
func (m *Manager) Pan(d geom.Point) {
	m.Transform.Pan(d)
	m.updatePointer(m.ptr.Screen)
	m.out.Redraw()
}

// CursorDegrees is the snapped cursor position in degrees.
func (m *Manager) CursorDegrees() geom.Point { return m.Meta.ToDegrees(m.ptr.Snap) }

// Objects lists the top-level objects for the object panel: lines first.
func (m *Manager) Objects() []mapobj.Object {
	var out []mapobj.Object
	for _, ln := range m.Lines.Items() {
		out = append(out, ln)
	}
	for _, pt := range m.Points.Items() {
		out = append(out, pt)
	}
	return out
}

// Draw paints every object and the draft line.
func (m *Manager) Draw(c mapobj.Canvas) {
	for _, ln := range m.Lines.Items() {
		ln.Draw(c, m.Transform)
	}
	for _, pt := range m.Points.Items() {
		pt.Draw(c, m.Transform)
	}
	if m.mode == ModeLineP2 && m.line.draft != nil {
		m.line.draft.Draw(c, m.Transform)
	}
}
