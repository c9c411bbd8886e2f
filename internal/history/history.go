// Package history records list mutations so they can be undone and redone.
package history

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrEmpty = errors.New("nothing to apply")

type Kind int

const (
	// KindMembership replaces the member array of a list.
	KindMembership Kind = iota + 1
	// KindGroup applies its Steps as one user operation.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindMembership:
		return "membership"
	case KindGroup:
		return "group"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Target is a list whose membership can be captured and put back.
type Target interface {
	Snapshot() any
	Restore(snapshot any)
}

type Action struct {
	Kind   Kind
	Target Target
	Before any
	After  any
	Steps  []Action // KindGroup only
}

// Inverse swaps the before and after snapshots. A group is inverted step by
// step in reverse order.
func (a Action) Inverse() Action {
	a.Before, a.After = a.After, a.Before
	if len(a.Steps) > 0 {
		steps := make([]Action, len(a.Steps))
		for i, st := range a.Steps {
			steps[len(steps)-1-i] = st.Inverse()
		}
		a.Steps = steps
	}
	return a
}

// Manager holds the undo and redo stacks.
type Manager struct {
	undo []Action
	redo []Action

	// OnApply runs after an undo or redo changed a list.
	OnApply func(Action)
}

func New() *Manager { return &Manager{} }

// Do records an action that has already been performed.
func (m *Manager) Do(a Action) {
	m.undo = append(m.undo, a)
}

// Track snapshots t, runs mutate and records one membership action when the
// membership actually changed. It reports whether an action was recorded.
func (m *Manager) Track(t Target, mutate func()) bool {
	before := t.Snapshot()
	mutate()
	after := t.Snapshot()
	if sameMembers(before, after) {
		return false
	}
	m.Do(Action{Kind: KindMembership, Target: t, Before: before, After: after})
	return true
}

// TrackAll is Track over several lists changed by one user operation. The
// lists that changed are recorded as one action, so one undo reverts them all.
func (m *Manager) TrackAll(mutate func(), targets ...Target) bool {
	before := make([]any, len(targets))
	for i, t := range targets {
		before[i] = t.Snapshot()
	}
	mutate()
	var steps []Action
	for i, t := range targets {
		after := t.Snapshot()
		if !sameMembers(before[i], after) {
			steps = append(steps, Action{Kind: KindMembership, Target: t, Before: before[i], After: after})
		}
	}
	switch len(steps) {
	case 0:
		return false
	case 1:
		m.Do(steps[0])
	default:
		m.Do(Action{Kind: KindGroup, Steps: steps})
	}
	return true
}

func (m *Manager) Undo() error {
	a, ok := pop(&m.undo)
	if !ok {
		return fmt.Errorf("undo: %w", ErrEmpty)
	}
	if err := m.apply(a); err != nil {
		m.undo = append(m.undo, a)
		return fmt.Errorf("undo: %w", err)
	}
	m.redo = append(m.redo, a.Inverse())
	return nil
}

func (m *Manager) Redo() error {
	a, ok := pop(&m.redo)
	if !ok {
		return fmt.Errorf("redo: %w", ErrEmpty)
	}
	if err := m.apply(a); err != nil {
		m.redo = append(m.redo, a)
		return fmt.Errorf("redo: %w", err)
	}
	m.undo = append(m.undo, a.Inverse())
	return nil
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

func (m *Manager) Len() (undo, redo int) { return len(m.undo), len(m.redo) }

// Clear drops all history, e.g. after a different map session was restored.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

// apply puts back the Before side of a.
func (m *Manager) apply(a Action) error {
	if err := restore(a); err != nil {
		return err
	}
	if m.OnApply != nil {
		m.OnApply(a.Inverse())
	}
	return nil
}

func restore(a Action) error {
	switch a.Kind {
	case KindMembership:
		a.Target.Restore(a.Before)
	case KindGroup:
		// undo runs the steps last to first
		for i := len(a.Steps) - 1; i >= 0; i-- {
			if err := restore(a.Steps[i]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported action %s", a.Kind)
	}
	return nil
}

func pop(s *[]Action) (Action, bool) {
	n := len(*s)
	if n == 0 {
		return Action{}, false
	}
	a := (*s)[n-1]
	*s = (*s)[:n-1]
	return a, true
}

// sameMembers compares two snapshots element by element by identity.
func sameMembers(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Slice || vb.Kind() != reflect.Slice {
		return false
	}
	if va.Len() != vb.Len() {
		return false
	}
	for i := 0; i < va.Len(); i++ {
		if va.Index(i).Interface() != vb.Index(i).Interface() {
			return false
		}
	}
	return true
}
