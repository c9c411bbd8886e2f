package interact

import (
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/mapobj"
	"topomap/internal/style"
	"topomap/internal/view"
)

type fakeOutput struct {
	status  []string
	prompts []string
	redraws int
	height  string
}

func (f *fakeOutput) Status(msg string) { f.status = append(f.status, msg) }
func (f *fakeOutput) Redraw()           { f.redraws++ }
func (f *fakeOutput) PromptHeight(prompt string, done func(float64, bool)) {
	f.prompts = append(f.prompts, prompt)
	done(ParseHeight(f.height))
}

func (f *fakeOutput) last() string {
	if len(f.status) == 0 {
		return ""
	}
	return f.status[len(f.status)-1]
}

func newManager(t *testing.T) (*Manager, *fakeOutput) {
	t.Helper()
	meta, err := georef.Builtin.Lookup("demo")
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	out := &fakeOutput{height: "100"}
	m := New(view.New(), &meta, out, log)
	return m, out
}

func TestPlaceLine(t *testing.T) {
	m, _ := newManager(t)
	m.SelectTool(ToolLine)
	assert.Equal(t, ModeLineP1, m.Mode())

	m.Click(geom.Pt(10, 10), false)
	assert.Equal(t, ModeLineP2, m.Mode())
	require.NotNil(t, m.Draft())

	m.PointerMove(geom.Pt(100, 40))
	assert.Equal(t, geom.Pt(100, 40), m.Draft().L.P2)

	m.Click(geom.Pt(100, 40), false)
	assert.Equal(t, ModeIdle, m.Mode())
	require.Equal(t, 1, m.Lines.Len())
	ln := m.Lines.At(0)
	assert.Equal(t, geom.Ln(geom.Pt(10, 10), geom.Pt(100, 40)), ln.L)
	assert.True(t, ln.Flags().Active)

	undo, _ := m.History.Len()
	assert.Equal(t, 1, undo)
}

func TestPlacePointSnapsToLine(t *testing.T) {
	m, _ := newManager(t)
	m.Lines.Add(mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0))))

	m.SelectTool(ToolPoint)
	m.Click(geom.Pt(50, 3), false)
	require.Equal(t, 1, m.Points.Len())
	assert.Equal(t, geom.Pt(50, 0), m.Points.At(0).Pos())
}

func TestSnapDisabled(t *testing.T) {
	m, _ := newManager(t)
	m.Lines.Add(mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0))))
	m.Key(KeyToggleSnap)
	require.False(t, m.Settings.Snap)

	m.SelectTool(ToolPoint)
	m.Click(geom.Pt(50, 3), false)
	assert.Equal(t, geom.Pt(50, 3), m.Points.At(0).Pos())
}

func TestSnapPrefersPoints(t *testing.T) {
	m, _ := newManager(t)
	m.Lines.Add(mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0))))
	pt := mapobj.NewPoint(geom.Pt(52, 2))
	m.Points.Add(pt)

	// the line is nearer to the cursor than the point
	m.PointerMove(geom.Pt(50, 1))
	assert.Same(t, pt, m.Hovered())
	assert.True(t, pt.Flags().Hover)
	assert.False(t, m.Lines.At(0).Flags().Hover)
	assert.Equal(t, geom.Pt(52, 2), m.Pointer().Snap)
}

func TestHoverFollowsCursor(t *testing.T) {
	m, _ := newManager(t)
	pt := mapobj.NewPoint(geom.Pt(10, 10))
	m.Points.Add(pt)

	m.PointerMove(geom.Pt(11, 10))
	assert.True(t, pt.Flags().Hover)
	m.PointerMove(geom.Pt(200, 200))
	assert.False(t, pt.Flags().Hover)
	assert.Nil(t, m.Hovered())
	assert.Equal(t, geom.Pt(200, 200), m.Pointer().Snap)
}

func TestHoverThresholdScalesWithDPR(t *testing.T) {
	m, _ := newManager(t)
	pt := mapobj.NewPoint(geom.Pt(0, 0))
	m.Points.Add(pt)

	m.PointerMove(geom.Pt(10, 0))
	assert.Nil(t, m.Hovered())

	m.Settings.DPR = 2
	m.PointerMove(geom.Pt(10, 0))
	assert.Same(t, pt, m.Hovered())
}

func TestClickSelectsExclusively(t *testing.T) {
	m, _ := newManager(t)
	a := mapobj.NewPoint(geom.Pt(0, 0))
	b := mapobj.NewPoint(geom.Pt(50, 0))
	m.Points.Add(a)
	m.Points.Add(b)

	m.Click(geom.Pt(0, 0), false)
	assert.True(t, a.Flags().Active)

	m.Click(geom.Pt(50, 0), false)
	assert.False(t, a.Flags().Active)
	assert.True(t, b.Flags().Active)

	m.Click(geom.Pt(0, 0), true)
	assert.True(t, a.Flags().Active)
	assert.True(t, b.Flags().Active)

	// shift-click on a selected object deselects only it
	m.Click(geom.Pt(0, 0), true)
	assert.False(t, a.Flags().Active)
	assert.True(t, b.Flags().Active)

	m.Click(geom.Pt(300, 300), false)
	assert.Zero(t, m.Points.CountState(style.StateActive, true))
}

func TestDragPansWithoutClicking(t *testing.T) {
	m, _ := newManager(t)
	pt := mapobj.NewPoint(geom.Pt(0, 0))
	m.Points.Add(pt)

	m.PointerDown(geom.Pt(0, 0))
	m.PointerMove(geom.Pt(2, 0))
	assert.Equal(t, geom.Pt(0, 0), m.Transform.Translate)

	m.PointerMove(geom.Pt(30, 20))
	assert.Equal(t, geom.Pt(30, 20), m.Transform.Translate)

	m.PointerUp(geom.Pt(30, 20), false)
	assert.False(t, pt.Flags().Active)
}

func TestSmallMoveStillClicks(t *testing.T) {
	m, _ := newManager(t)
	pt := mapobj.NewPoint(geom.Pt(0, 0))
	m.Points.Add(pt)

	m.PointerDown(geom.Pt(0, 0))
	m.PointerMove(geom.Pt(3, 0))
	m.PointerUp(geom.Pt(3, 0), false)
	assert.True(t, pt.Flags().Active)
	assert.Equal(t, geom.Pt(0, 0), m.Transform.Translate)
}

func TestEscapeDiscardsDraft(t *testing.T) {
	m, _ := newManager(t)
	m.SelectTool(ToolLine)
	m.Click(geom.Pt(10, 10), false)
	m.Key(KeyEscape)

	assert.Equal(t, ModeIdle, m.Mode())
	assert.Nil(t, m.Draft())
	assert.Zero(t, m.Lines.Len())
}

func TestTopoToolNeedsOneLine(t *testing.T) {
	m, out := newManager(t)
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	m.Lines.Add(ln)

	m.SelectTool(ToolTopo)
	assert.Equal(t, ModeSelectTopoLine, m.Mode())

	m.Click(geom.Pt(50, 50), false)
	assert.Equal(t, ModeSelectTopoLine, m.Mode())
	assert.Equal(t, "profile: no line here", out.last())

	m.Click(geom.Pt(50, 1), false)
	assert.Equal(t, ModeTopoPoint, m.Mode())
	assert.Same(t, ln, m.TopoLine())
}

func TestTopoPointsRepeat(t *testing.T) {
	m, out := newManager(t)
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	ln.Flags().Active = true
	m.Lines.Add(ln)

	m.SelectTool(ToolTopo)
	require.Equal(t, ModeTopoPoint, m.Mode())

	out.height = "120,5"
	m.Click(geom.Pt(75, 2), false)
	out.height = "80"
	m.Click(geom.Pt(25, 2), false)
	assert.Equal(t, ModeTopoPoint, m.Mode())

	require.Equal(t, 2, ln.Profile.Len())
	assert.InDelta(t, 0.25, ln.Profile.At(0).Position, 1e-9)
	assert.Equal(t, 80.0, ln.Profile.At(0).Height)
	assert.InDelta(t, 0.75, ln.Profile.At(1).Position, 1e-9)
	assert.Equal(t, 120.5, ln.Profile.At(1).Height)
	assert.Len(t, out.prompts, 2)

	out.height = "abc"
	m.Click(geom.Pt(50, 2), false)
	assert.Equal(t, 2, ln.Profile.Len())
	assert.Equal(t, "profile: no height entered", out.last())

	m.Key(KeyEscape)
	assert.Equal(t, ModeIdle, m.Mode())
}

func TestDeleteProfilePointsOfSingleLine(t *testing.T) {
	m, _ := newManager(t)
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	keep := ln.Profile.AddAt(0.2, 1)
	drop := ln.Profile.AddAt(0.8, 2)
	ln.Flags().Active = true
	drop.Flags().Active = true
	m.Lines.Add(ln)
	pt := mapobj.NewPoint(geom.Pt(5, 5))
	pt.Flags().Active = true
	m.Points.Add(pt)

	m.Key(KeyDelete)
	assert.Equal(t, 1, m.Lines.Len())
	assert.Equal(t, 1, m.Points.Len())
	require.Equal(t, 1, ln.Profile.Len())
	assert.Same(t, keep, ln.Profile.At(0))

	require.NoError(t, m.History.Undo())
	assert.Equal(t, 2, ln.Profile.Len())
}

func TestDeleteActiveObjects(t *testing.T) {
	m, _ := newManager(t)
	a := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	b := mapobj.NewLine(geom.Ln(geom.Pt(0, 50), geom.Pt(100, 50)))
	b.Flags().Active = true
	m.Lines.Add(a)
	m.Lines.Add(b)
	pt := mapobj.NewPoint(geom.Pt(5, 5))
	pt.Flags().Active = true
	m.Points.Add(pt)

	m.Key(KeyDelete)
	require.Equal(t, 1, m.Lines.Len())
	assert.Same(t, a, m.Lines.At(0))
	assert.Zero(t, m.Points.Len())

	undo, _ := m.History.Len()
	assert.Equal(t, 1, undo)

	m.Key(KeyUndo)
	assert.Equal(t, 1, m.Points.Len())
	require.Equal(t, 2, m.Lines.Len())
	assert.Same(t, b, m.Lines.At(1))
	assert.False(t, m.History.CanUndo())

	m.Key(KeyRedo)
	assert.Equal(t, 1, m.Lines.Len())
	assert.Zero(t, m.Points.Len())
}

func TestClickProfilePointThenDelete(t *testing.T) {
	m, out := newManager(t)
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	pp := ln.Profile.AddAt(0.5, 7)
	other := mapobj.NewLine(geom.Ln(geom.Pt(0, 50), geom.Pt(100, 50)))
	other.Flags().Active = true
	m.Lines.Add(ln)
	m.Lines.Add(other)

	m.Click(geom.Pt(50, 0), false)
	assert.True(t, pp.Flags().Active)
	assert.True(t, ln.Flags().Active)
	assert.False(t, other.Flags().Active)

	m.Key(KeyDelete)
	assert.Zero(t, ln.Profile.Len())
	assert.Equal(t, 2, m.Lines.Len())
	assert.Equal(t, "deleted 1 profile points", out.last())
}

func TestProfileStaysSortedAfterReverseAndUndo(t *testing.T) {
	m, _ := newManager(t)
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	ln.Profile.AddAt(0.2, 1)
	ln.Profile.AddAt(0.5, 2)
	ln.Flags().Active = true
	m.Lines.Add(ln)
	m.History.Track(ln.Profile.List, func() { ln.Profile.AddAt(0.9, 3) })

	m.Key(KeyReverse)
	m.Key(KeyUndo)

	var positions []float64
	for _, p := range ln.Profile.Items() {
		positions = append(positions, p.Position)
	}
	require.Len(t, positions, 2)
	assert.IsNonDecreasing(t, positions)
	assert.InDelta(t, 0.5, positions[0], 1e-9)
	assert.InDelta(t, 0.8, positions[1], 1e-9)
}

func TestDeleteNothingRecordsNothing(t *testing.T) {
	m, _ := newManager(t)
	m.Points.Add(mapobj.NewPoint(geom.Pt(5, 5)))
	m.Key(KeyDelete)

	undo, redo := m.History.Len()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
	assert.Equal(t, 1, m.Points.Len())
}

func TestUndoOnEmptyHistory(t *testing.T) {
	m, out := newManager(t)
	m.Key(KeyUndo)
	assert.Equal(t, "nothing to undo", out.last())
	m.Key(KeyRedo)
	assert.Equal(t, "nothing to redo", out.last())
}

func TestUndoDropsStaleTopoLine(t *testing.T) {
	m, _ := newManager(t)
	m.SelectTool(ToolLine)
	m.Click(geom.Pt(0, 0), false)
	m.Click(geom.Pt(100, 0), false)
	m.SelectTool(ToolTopo)
	require.Equal(t, ModeTopoPoint, m.Mode())

	m.Key(KeyUndo)
	assert.Zero(t, m.Lines.Len())
	assert.Equal(t, ModeIdle, m.Mode())
	assert.Nil(t, m.TopoLine())
}

func TestReverseAndDivisions(t *testing.T) {
	m, _ := newManager(t)
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(100, 0)))
	ln.Profile.AddAt(0.1, 5)
	ln.Flags().Active = true
	m.Lines.Add(ln)

	m.Key(KeyReverse)
	assert.Equal(t, geom.Pt(100, 0), ln.L.P1)
	assert.InDelta(t, 0.9, ln.Profile.At(0).Position, 1e-9)

	m.Key(KeyMoreDivisions)
	m.Key(KeyMoreDivisions)
	assert.Equal(t, 2, ln.Divisions)
	m.Key(KeyFewerDivisions)
	m.Key(KeyFewerDivisions)
	m.Key(KeyFewerDivisions)
	assert.Zero(t, ln.Divisions)
}

func TestWheelZoomsAboutCursor(t *testing.T) {
	m, _ := newManager(t)
	cursor := geom.Pt(40, 30)
	before := m.Transform.ToCanvas(cursor)

	m.Wheel(cursor, true)
	assert.InDelta(t, 1/view.ZoomFactor, m.Transform.Scale, 1e-9)
	after := m.Transform.ToCanvas(cursor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomButtonUsesViewportCentre(t *testing.T) {
	m, _ := newManager(t)
	viewport := geom.Pt(200, 100)
	centre := m.Transform.ToCanvas(geom.Pt(100, 50))

	m.ZoomButton(viewport, false)
	assert.InDelta(t, view.ZoomFactor, m.Transform.Scale, 1e-9)
	got := m.Transform.ToCanvas(geom.Pt(100, 50))
	assert.InDelta(t, centre.X, got.X, 1e-9)
	assert.InDelta(t, centre.Y, got.Y, 1e-9)
}

func TestEveryHandlerRedraws(t *testing.T) {
	m, out := newManager(t)
	steps := []func(){
		func() { m.PointerMove(geom.Pt(1, 1)) },
		func() { m.PointerDown(geom.Pt(1, 1)) },
		func() { m.PointerUp(geom.Pt(1, 1), false) },
		func() { m.Key(KeyEscape) },
		func() { m.Wheel(geom.Pt(1, 1), true) },
		func() { m.SelectTool(ToolPoint) },
		func() { m.Pan(geom.Pt(5, 0)) },
	}
	for _, step := range steps {
		n := out.redraws
		step()
		assert.Greater(t, out.redraws, n)
	}
}

func TestObjectsListsLinesFirst(t *testing.T) {
	m, _ := newManager(t)
	pt := mapobj.NewPoint(geom.Pt(1, 1))
	ln := mapobj.NewLine(geom.Ln(geom.Pt(0, 0), geom.Pt(1, 0)))
	m.Points.Add(pt)
	m.Lines.Add(ln)

	objs := m.Objects()
	require.Len(t, objs, 2)
	assert.Same(t, ln, objs[0])
	assert.Same(t, pt, objs[1])
}

func TestParseHeight(t *testing.T) {
	for in, want := range map[string]float64{"12": 12, " 3.5 ": 3.5, "-4,25": -4.25} {
		h, ok := ParseHeight(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, h, in)
	}
	for _, in := range []string{"", "  ", "abc", "NaN", "inf"} {
		_, ok := ParseHeight(in)
		assert.False(t, ok, in)
	}
}
