// Package mapobj implements the drawable, selectable annotations placed on a
// map: points, lines and the topographic profile points owned by a line.
//
// Coordinates are stored in canvas space. Drawing and hit testing happen in
// screen space through a view.Transform.
package mapobj

import (
	"topomap/internal/geom"
	"topomap/internal/georef"
	"topomap/internal/objlist"
	"topomap/internal/style"
	"topomap/internal/view"
)

// Canvas receives drawing in screen space.
type Canvas interface {
	// DPR is the device pixel ratio of the target.
	DPR() float64
	StrokeLine(a, b geom.Point, s style.Style)
	FillDisc(c geom.Point, r float64, s style.Style)
}

// Object is the behaviour shared by every annotation.
type Object interface {
	objlist.Item
	ForceStatus() string
	SetForceStatus(string)
	SetLocalStyle(*style.Table)
	// EffectiveStyle is the style the object is drawn with right now.
	EffectiveStyle() style.Style
	// SnapTarget projects a canvas point onto the object.
	SnapTarget(c geom.Point) geom.Point
	Draw(c Canvas, tr *view.Transform)
	Summary(meta *georef.MapMeta, unit georef.Unit) string
}

// base carries interaction state and styling.
type base struct {
	flags style.Flags
	force string
	local *style.Table
	group *style.Table
}

func (b *base) Flags() *style.Flags { return &b.flags }

func (b *base) ForceStatus() string { return b.force }

func (b *base) SetForceStatus(s string) { b.force = s }

func (b *base) LocalStyle() *style.Table { return b.local }

// SetLocalStyle installs an object-specific table. It only shows while no
// group style is assigned.
func (b *base) SetLocalStyle(t *style.Table) { b.local = t }

func (b *base) GroupStyle() *style.Table { return b.group }

func (b *base) SetGroupStyle(t *style.Table) { b.group = t }

func (b *base) table() *style.Table { return style.Resolve(b.local, b.group) }

// drawFlags honours a forced status before the live flags.
func (b *base) drawFlags() style.Flags {
	if f, ok := style.Force(b.force); ok {
		return f
	}
	return b.flags
}

func (b *base) EffectiveStyle() style.Style { return b.table().Pick(b.drawFlags()) }

// recordStyle is the style written on save: the local table, unless a
// group style overrides it anyway.
func (b *base) recordStyle() *style.Table {
	if b.group != nil {
		return nil
	}
	return b.local.Clone()
}

func (b *base) recordForce() *string {
	if b.force == "" {
		return nil
	}
	s := b.force
	return &s
}

func (b *base) assignCommon(force *string, st *style.Table) {
	b.force = ""
	if force != nil {
		b.force = *force
	}
	b.local = st.Clone()
}
