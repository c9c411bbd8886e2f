// Package objlist is an ordered collection of map objects with selection
// queries, hit testing and a shared group style.
package objlist

import (
	"slices"

	"topomap/internal/geom"
	"topomap/internal/style"
	"topomap/internal/view"
)

// Item is what a List can hold.
type Item interface {
	Flags() *style.Flags
	LocalStyle() *style.Table
	GroupStyle() *style.Table
	SetGroupStyle(*style.Table)
	// DistanceToScreen is the screen-space distance from s to the object.
	DistanceToScreen(s geom.Point, tr *view.Transform) float64
}

// List keeps insertion order unless a sort order is installed with SortBy.
type List[T Item] struct {
	items []T
	group *style.Table
	order func(a, b T) int

	// OnChange runs after every change of membership or order, including
	// undo and redo. The terminal UI uses it to rebuild the object panel.
	OnChange func()
}

func New[T Item](group *style.Table) *List[T] {
	return &List[T]{group: group}
}

// SortBy keeps the list ordered by cmp from now on.
func (l *List[T]) SortBy(cmp func(a, b T) int) {
	l.order = cmp
	l.Resort()
}

// Resort re-establishes the sort order after members changed their keys.
func (l *List[T]) Resort() {
	if l.order == nil {
		return
	}
	slices.SortStableFunc(l.items, l.order)
	l.changed()
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) At(i int) T { return l.items[i] }

// Items returns the members in list order. The slice is a copy.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

func (l *List[T]) Index(item T) int {
	for i, it := range l.items {
		if any(it) == any(item) {
			return i
		}
	}
	return -1
}

func (l *List[T]) GroupStyle() *style.Table { return l.group }

// SetGroupStyle swaps the shared table; members that used the previous one follow.
func (l *List[T]) SetGroupStyle(t *style.Table) {
	old := l.group
	l.group = t
	for _, it := range l.items {
		if it.GroupStyle() == old {
			it.SetGroupStyle(t)
		}
	}
	l.changed()
}

// Add appends item. Members without any style of their own get the group style.
// Callers record the change for undo.
func (l *List[T]) Add(item T) {
	if item.GroupStyle() == nil && item.LocalStyle() == nil {
		item.SetGroupStyle(l.group)
	}
	l.items = append(l.items, item)
	if l.order != nil {
		slices.SortStableFunc(l.items, l.order)
	}
	l.changed()
}

// Remove drops item and reports whether it was a member.
func (l *List[T]) Remove(item T) bool {
	i := l.Index(item)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(slices.Clone(l.items), i, i+1)
	l.changed()
	return true
}

// GetState returns the members whose flag name equals value, in list order.
func (l *List[T]) GetState(name style.StateName, value bool) []T {
	var out []T
	for _, it := range l.items {
		if it.Flags().Get(name) == value {
			out = append(out, it)
		}
	}
	return out
}

// CountState is len(GetState(name, value)) without the allocation.
func (l *List[T]) CountState(name style.StateName, value bool) int {
	n := 0
	for _, it := range l.items {
		if it.Flags().Get(name) == value {
			n++
		}
	}
	return n
}

// SetState sets flag name on every member.
func (l *List[T]) SetState(name style.StateName, value bool) *List[T] {
	for _, it := range l.items {
		it.Flags().Set(name, value)
	}
	return l
}

// FlipState negates flag name on every member.
func (l *List[T]) FlipState(name style.StateName) *List[T] {
	for _, it := range l.items {
		f := it.Flags()
		f.Set(name, !f.Get(name))
	}
	return l
}

// DeleteState removes the members whose flag name equals value and returns
// them. Callers that want undo take a snapshot first.
func (l *List[T]) DeleteState(name style.StateName, value bool) []T {
	var keep, gone []T
	for _, it := range l.items {
		if it.Flags().Get(name) == value {
			gone = append(gone, it)
		} else {
			keep = append(keep, it)
		}
	}
	if len(gone) == 0 {
		return nil
	}
	l.items = keep
	l.changed()
	return gone
}

// GetCloseToScreenPoint returns the members closer than threshold to the
// screen point s. Results keep list order so the first added object wins ties.
func (l *List[T]) GetCloseToScreenPoint(s geom.Point, threshold float64, tr *view.Transform) []T {
	var out []T
	for _, it := range l.items {
		if it.DistanceToScreen(s, tr) < threshold {
			out = append(out, it)
		}
	}
	return out
}

// First returns the first member closer than threshold to s.
func (l *List[T]) First(s geom.Point, threshold float64, tr *view.Transform) (T, bool) {
	for _, it := range l.items {
		if it.DistanceToScreen(s, tr) < threshold {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot captures the membership for undo. Members are shared, not copied.
func (l *List[T]) Snapshot() any { return slices.Clone(l.items) }

// Restore replaces the membership with a snapshot taken by Snapshot. Sort
// keys may have changed since the snapshot, so a sorted list is re-sorted.
func (l *List[T]) Restore(snap any) {
	items, ok := snap.([]T)
	if !ok {
		return
	}
	l.items = slices.Clone(items)
	if l.order != nil {
		slices.SortStableFunc(l.items, l.order)
	}
	l.changed()
}

// Replace swaps in a new membership wholesale, as a restore does.
func (l *List[T]) Replace(items []T) {
	l.items = nil
	for _, it := range items {
		if it.GroupStyle() == nil && it.LocalStyle() == nil {
			it.SetGroupStyle(l.group)
		}
		l.items = append(l.items, it)
	}
	if l.order != nil {
		slices.SortStableFunc(l.items, l.order)
	}
	l.changed()
}

func (l *List[T]) changed() {
	if l.OnChange != nil {
		l.OnChange()
	}
}
