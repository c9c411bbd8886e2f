package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"topomap/internal/mapobj"
)

type objectItem struct {
	title, desc string
	obj         mapobj.Object
}

func (o objectItem) Title() string       { return o.title }
func (o objectItem) Description() string { return o.desc }
func (o objectItem) FilterValue() string { return o.title }

func stateLabel(o mapobj.Object) string {
	var parts []string
	f := o.Flags()
	if f.Active {
		parts = append(parts, "selected")
	}
	if f.Hover {
		parts = append(parts, "hover")
	}
	if f.Disabled {
		parts = append(parts, "disabled")
	}
	if fs := o.ForceStatus(); fs != "" {
		parts = append(parts, "forced "+fs)
	}
	return strings.Join(parts, ", ")
}

// refreshObjects rebuilds the sidebar rows from the object lists. The
// returned command refilters the rows when a filter is applied.
func (m *Model) refreshObjects() tea.Cmd {
	if m.out.members {
		// filtered rows may still hold deleted objects
		m.out.members = false
		m.l.ResetFilter()
	}
	meta, unit := m.mgr.Meta, m.mgr.Settings.Unit
	var items []list.Item
	for _, o := range m.mgr.Objects() {
		desc := stateLabel(o)
		if ln, ok := o.(*mapobj.Line); ok {
			extra := unit.Format(ln.Length(meta))
			if ln.Divisions > 0 {
				extra += fmt.Sprintf(", %d ticks", ln.Divisions)
			}
			desc = strings.Trim(extra+", "+desc, ", ")
		}
		items = append(items, objectItem{
			title: truncate(o.Summary(meta, unit), sidebarWidth-4),
			desc:  truncate(desc, sidebarWidth-4),
			obj:   o,
		})
	}
	idx := m.l.Index()
	cmd := m.l.SetItems(items)
	if idx < len(items) {
		m.l.Select(idx)
	}
	return cmd
}

// hoverSelectedItem highlights the object under the sidebar cursor on the map.
func (m *Model) hoverSelectedItem() {
	if it, ok := m.l.SelectedItem().(objectItem); ok {
		m.mgr.HoverObject(it.obj)
	}
}
