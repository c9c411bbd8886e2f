package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/interact"
	"topomap/internal/mapobj"
	"topomap/internal/store"
	"topomap/internal/style"
)

func TestBraillePixels(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0, "")
	b.setPixel(3, 3, "")
	b.setPixel(-1, 0, "")
	b.setPixel(4, 0, "")
	assert.Equal(t, []string{"⠁⢀"}, b.plainLines())
}

func TestBrailleStrokes(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.StrokeLine(geom.Pt(0, 0), geom.Pt(3, 0), style.Style{StrokeType: style.Solid})
	assert.Equal(t, []string{"⠉⠉"}, b.plainLines())

	b = newBrailleBuf(2, 1)
	b.StrokeLine(geom.Pt(0, 0), geom.Pt(3, 0), style.Style{StrokeType: style.Dotted})
	assert.Equal(t, []string{"⠁⠈"}, b.plainLines())
}

func TestBrailleClipsLongLines(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.StrokeLine(geom.Pt(-1e9, 2), geom.Pt(1e9, 2), style.Style{})
	assert.Equal(t, []string{"⠤⠤"}, b.plainLines())

	b = newBrailleBuf(2, 1)
	b.StrokeLine(geom.Pt(-50, -50), geom.Pt(-10, -40), style.Style{})
	assert.Equal(t, []string{"  "}, b.plainLines())
}

func TestBrailleDisc(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.FillDisc(geom.Pt(1, 1), 0.5, style.Style{})
	assert.Equal(t, []string{"⠐ "}, b.plainLines())

	b = newBrailleBuf(2, 1)
	b.FillDisc(geom.Pt(100, 100), 3, style.Style{})
	assert.Equal(t, []string{"  "}, b.plainLines())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "…", truncate("abcdef", 1))
}

func testModel(t *testing.T, s store.Store) Model {
	t.Helper()
	meta, err := georef.Builtin.Lookup("demo")
	require.NoError(t, err)
	cat := georef.Builtin
	log, _ := logtest.NewNullLogger()
	m := New(Options{
		Meta:       meta,
		Catalog:    &cat,
		Store:      s,
		StorageKey: "session",
		Settings:   interact.DefaultSettings(),
		Log:        log,
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return send(t, m, m.Init()())
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// click presses and releases the left button on a cell of the map area.
func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func TestWindowFitsMap(t *testing.T) {
	m := testModel(t, nil)
	tr := m.Manager().Transform
	assert.InDelta(t, 84.0/4096.0, tr.Scale, 1e-12)
	assert.InDelta(t, 38.0, tr.Translate.X, 1e-9)
	assert.True(t, m.tilesReady)
	assert.Len(t, m.tileLayout, 64)
	assert.NotEmpty(t, m.View())
}

func TestPlacePointWithMouse(t *testing.T) {
	m := testModel(t, nil)
	m = send(t, m, key("p"))
	assert.Equal(t, interact.ModePoint, m.Manager().Mode())

	m = click(t, m, 40, 11)
	require.Equal(t, 1, m.Manager().Points.Len())
	got := m.Manager().Transform.ToScreen(m.Manager().Points.At(0).Pos())
	assert.InDelta(t, 81.0, got.X, 1e-6)
	assert.InDelta(t, 42.0, got.Y, 1e-6)
	assert.Len(t, m.l.Items(), 1)
}

func TestClickOutsideMapIsIgnored(t *testing.T) {
	m := testModel(t, nil)
	m = send(t, m, key("p"))
	m = click(t, m, 40, 0)
	assert.Zero(t, m.Manager().Points.Len())
	assert.Equal(t, interact.ModePoint, m.Manager().Mode())
}

func drawLine(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, key("l"))
	m = click(t, m, 30, 11)
	m = click(t, m, 50, 11)
	require.Equal(t, 1, m.Manager().Lines.Len())
	return m
}

func TestProfilePointPrompt(t *testing.T) {
	m := drawLine(t, testModel(t, nil))
	m = send(t, m, key("t"))
	require.Equal(t, interact.ModeTopoPoint, m.Manager().Mode())

	m = click(t, m, 40, 11)
	require.NotNil(t, m.out.done)
	assert.True(t, m.ti.Focused())

	m = send(t, m, key("1"))
	m = send(t, m, key("2"))
	m = send(t, m, key("enter"))
	assert.Nil(t, m.out.done)
	assert.False(t, m.ti.Focused())

	ln := m.Manager().Lines.At(0)
	require.Equal(t, 1, ln.Profile.Len())
	assert.Equal(t, 12.0, ln.Profile.At(0).Height)
	assert.InDelta(t, 0.5, ln.Profile.At(0).Position, 0.01)

	// the prompt swallows tool keys until answered
	m = click(t, m, 45, 11)
	require.NotNil(t, m.out.done)
	m = send(t, m, key("l"))
	assert.Equal(t, interact.ModeTopoPoint, m.Manager().Mode())
	m = send(t, m, key("esc"))
	assert.Nil(t, m.out.done)
	assert.Equal(t, 1, ln.Profile.Len())

	m = send(t, m, key("a"))
	assert.True(t, m.showProfile)
	assert.Len(t, m.tbl.Rows(), 1)
}

func TestProfileTableNeedsOneLine(t *testing.T) {
	m := testModel(t, nil)
	m = send(t, m, key("a"))
	assert.False(t, m.showProfile)
	assert.Equal(t, "select one line to see its profile", m.out.status)
}

func TestKeysDriveManager(t *testing.T) {
	m := drawLine(t, testModel(t, nil))
	m = send(t, m, key("]"))
	assert.Equal(t, 1, m.Manager().Lines.At(0).Divisions)

	m = send(t, m, key("x"))
	assert.Zero(t, m.Manager().Lines.Len())
	m = send(t, m, key("u"))
	assert.Equal(t, 1, m.Manager().Lines.Len())
	m = send(t, m, key("r"))
	assert.Zero(t, m.Manager().Lines.Len())

	m = send(t, m, key("s"))
	assert.False(t, m.Manager().Settings.Snap)

	scale := m.Manager().Transform.Scale
	m = send(t, m, key("+"))
	assert.InDelta(t, scale/0.8, m.Manager().Transform.Scale, 1e-12)
	m = send(t, m, key("f"))
	assert.InDelta(t, scale, m.Manager().Transform.Scale, 1e-12)
}

func TestSidebarSelectsObjects(t *testing.T) {
	m := drawLine(t, testModel(t, nil))
	m = send(t, m, key("esc"))
	m.Manager().Lines.At(0).Flags().Active = false

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.showSidebar)
	assert.Equal(t, sidebarWidth+1, m.layout().mapX)

	m = send(t, m, key("enter"))
	assert.True(t, m.Manager().Lines.At(0).Flags().Active)
}

func TestListChangesRefreshSidebar(t *testing.T) {
	m := testModel(t, nil)
	require.Empty(t, m.l.Items())

	m.Manager().Points.Add(mapobj.NewPoint(geom.Pt(10, 10)))
	assert.True(t, m.out.members)
	assert.False(t, m.out.dirty)

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.False(t, m.out.members)
	assert.Len(t, m.l.Items(), 1)
}

func TestUndoDeleteRefreshesSidebar(t *testing.T) {
	m := drawLine(t, testModel(t, nil))
	m = send(t, m, key("x"))
	assert.Empty(t, m.l.Items())
	m = send(t, m, key("u"))
	assert.Len(t, m.l.Items(), 1)
}

func TestSaveAndRestore(t *testing.T) {
	s := store.NewMemory()
	m := drawLine(t, testModel(t, s))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, key("w"))
	assert.Equal(t, "saved", m.out.status)

	raw, ok, err := s.Get("session")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "demo", gjson.Get(raw, "map").String())
	assert.True(t, gjson.Get(raw, "settings.paneState.sidebar").Bool())

	again := testModel(t, s)
	assert.Equal(t, "session restored", again.out.status)
	assert.Equal(t, 1, again.Manager().Lines.Len())
	assert.True(t, again.showSidebar)
	assert.Equal(t, *m.Manager().Transform, *again.Manager().Transform)
}

func TestQuitSaves(t *testing.T) {
	s := store.NewMemory()
	m := testModel(t, s)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	_, ok, err := s.Get("session")
	require.NoError(t, err)
	assert.True(t, ok)
}
