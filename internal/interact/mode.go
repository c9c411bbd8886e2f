package interact

import (
	"math"
	"strconv"
	"strings"
)

// Mode is the click mode of the active tool.
type Mode int

const (
	ModeIdle Mode = iota
	ModeLineP1
	ModeLineP2
	ModePoint
	ModeSelectTopoLine
	ModeTopoPoint
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeLineP1:
		return "line: first point"
	case ModeLineP2:
		return "line: second point"
	case ModePoint:
		return "point"
	case ModeSelectTopoLine:
		return "profile: pick a line"
	case ModeTopoPoint:
		return "profile: add points"
	}
	return "unknown"
}

// Tool is what the user activates from the keyboard or toolbar.
type Tool int

const (
	ToolLine Tool = iota + 1
	ToolPoint
	ToolTopo
)

// Key is a keyboard command understood by the manager.
type Key int

const (
	KeyEscape Key = iota + 1
	KeyDelete
	KeyUndo
	KeyRedo
	KeyReverse
	KeyMoreDivisions
	KeyFewerDivisions
	KeyToggleSnap
)

// ParseHeight reads a height typed by the user. Empty or non-numeric
// input is rejected.
func ParseHeight(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, false
	}
	return h, true
}
