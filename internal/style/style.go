// Package style holds the per-state drawing styles of map objects and the
// rule that picks between an object's own style and its group style.
package style

type StrokeType string

const (
	Solid  StrokeType = "solid"
	Dashed StrokeType = "dashed"
	Dotted StrokeType = "dotted"
)

type Style struct {
	Color      string     `json:"color"`
	Width      float64    `json:"width"`
	StrokeType StrokeType `json:"strokeType"`
}

// Table has one style per interaction state.
type Table struct {
	Normal   Style `json:"normal"`
	Hover    Style `json:"hover"`
	Active   Style `json:"active"`
	Disabled Style `json:"disabled"`
}

// Flags is the interaction state consulted when picking a style.
type Flags struct {
	Hover    bool
	Active   bool
	Disabled bool
}

func DefaultLines() Table {
	return Table{
		Normal:   Style{Color: "#E6E6E6", Width: 1, StrokeType: Solid},
		Hover:    Style{Color: "#FFA500", Width: 2, StrokeType: Solid},
		Active:   Style{Color: "#7C3AED", Width: 2, StrokeType: Solid},
		Disabled: Style{Color: "#6B7280", Width: 1, StrokeType: Dotted},
	}
}

func DefaultPoints() Table {
	return Table{
		Normal:   Style{Color: "#38BDF8", Width: 1, StrokeType: Solid},
		Hover:    Style{Color: "#FFA500", Width: 1.5, StrokeType: Solid},
		Active:   Style{Color: "#7C3AED", Width: 1.5, StrokeType: Solid},
		Disabled: Style{Color: "#6B7280", Width: 1, StrokeType: Solid},
	}
}

var fallback = DefaultLines()

// Resolve returns the table an object draws with: the group table when one
// is assigned, else the object's own, else the package default.
func Resolve(local, group *Table) *Table {
	if group != nil {
		return group
	}
	if local != nil {
		return local
	}
	return &fallback
}

// Pick selects the style for f. Disabled wins over active, active over hover.
func (t *Table) Pick(f Flags) Style {
	switch {
	case f.Disabled:
		return t.Disabled
	case f.Active:
		return t.Active
	case f.Hover:
		return t.Hover
	default:
		return t.Normal
	}
}

// Clone returns a copy that can be edited without touching t.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// StateName names one of the interaction flags.
type StateName string

const (
	StateHover    StateName = "hover"
	StateActive   StateName = "active"
	StateDisabled StateName = "disabled"
)

// Get returns the flag called name; unknown names read as false.
func (f *Flags) Get(name StateName) bool {
	switch name {
	case StateHover:
		return f.Hover
	case StateActive:
		return f.Active
	case StateDisabled:
		return f.Disabled
	}
	return false
}

func (f *Flags) Set(name StateName, v bool) {
	switch name {
	case StateHover:
		f.Hover = v
	case StateActive:
		f.Active = v
	case StateDisabled:
		f.Disabled = v
	}
}

// Any reports whether at least one flag is raised.
func (f Flags) Any() bool { return f.Hover || f.Active || f.Disabled }

// Force returns the flags implied by a forced status name ("normal",
// "hover", "active", "disabled"). ok is false for an empty or unknown name.
func Force(status string) (f Flags, ok bool) {
	switch StateName(status) {
	case StateHover, StateActive, StateDisabled:
		f.Set(StateName(status), true)
		return f, true
	}
	if status == "normal" {
		return Flags{}, true
	}
	return Flags{}, false
}
