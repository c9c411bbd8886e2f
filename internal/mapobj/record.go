package mapobj

import (
	"topomap/internal/geom"
	"topomap/internal/style"
)

// PointRecord is the persisted form of a Point.
type PointRecord struct {
	P           geom.Point   `json:"p"`
	Name        string       `json:"name,omitempty"`
	ForceStatus *string      `json:"forceStatus"`
	Style       *style.Table `json:"style,omitempty"`
}

// ProfilePointRecord is the persisted form of a ProfilePoint.
type ProfilePointRecord struct {
	Position    float64      `json:"position"`
	Height      float64      `json:"height"`
	ForceStatus *string      `json:"forceStatus"`
	Style       *style.Table `json:"style,omitempty"`
}

type ProfileListRecord struct {
	List []ProfilePointRecord `json:"list"`
}

// LineRecord is the persisted form of a Line and its profile.
type LineRecord struct {
	L           geom.Line          `json:"l"`
	Divisions   int                `json:"divisions"`
	ForceStatus *string            `json:"forceStatus"`
	Style       *style.Table       `json:"style,omitempty"`
	TopoPoints  *ProfileListRecord `json:"topoPoints,omitempty"`
}

func (pt *Point) Record() PointRecord {
	return PointRecord{
		P:           pt.p,
		Name:        pt.Name,
		ForceStatus: pt.recordForce(),
		Style:       pt.recordStyle(),
	}
}

func (pt *Point) Assign(r PointRecord) {
	pt.p = r.P
	pt.Name = r.Name
	pt.assignCommon(r.ForceStatus, r.Style)
}

func PointFromRecord(r PointRecord) *Point {
	pt := NewPoint(r.P)
	pt.Assign(r)
	return pt
}

// Record always carries the local style: profile points draw with their
// line's table, so nothing overrides it.
func (pp *ProfilePoint) Record() ProfilePointRecord {
	return ProfilePointRecord{
		Position:    pp.Position,
		Height:      pp.Height,
		ForceStatus: pp.recordForce(),
		Style:       pp.local.Clone(),
	}
}

func (pp *ProfilePoint) Assign(r ProfilePointRecord) {
	pp.Position = geom.Clamp01(r.Position)
	pp.Height = r.Height
	pp.assignCommon(r.ForceStatus, r.Style)
}

func (ln *Line) Record() LineRecord {
	r := LineRecord{
		L:           ln.L,
		Divisions:   ln.Divisions,
		ForceStatus: ln.recordForce(),
		Style:       ln.recordStyle(),
	}
	if ln.Profile.Len() > 0 {
		pr := &ProfileListRecord{}
		for _, pp := range ln.Profile.Items() {
			pr.List = append(pr.List, pp.Record())
		}
		r.TopoPoints = pr
	}
	return r
}

// Assign restores the line and rebuilds its profile points against ln.
func (ln *Line) Assign(r LineRecord) {
	ln.L = r.L
	ln.SetDivisions(r.Divisions)
	ln.assignCommon(r.ForceStatus, r.Style)

	var pts []*ProfilePoint
	if r.TopoPoints != nil {
		for _, pr := range r.TopoPoints.List {
			pp := ln.Profile.NewPoint(0, 0)
			pp.Assign(pr)
			pts = append(pts, pp)
		}
	}
	ln.Profile.Replace(pts)
}

func LineFromRecord(r LineRecord) *Line {
	ln := NewLine(r.L)
	ln.Assign(r)
	return ln
}
