package model

import (
	"fmt"
	"math"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
)

// Chain identifies one of the two independent four-bar sub-linkages.
type Chain int

const (
	ChainA Chain = iota
	ChainB
)

func (c Chain) String() string {
	if c == ChainB {
		return "B"
	}
	return "A"
}

// Other returns the opposite chain.
func (c Chain) Other() Chain {
	if c == ChainA {
		return ChainB
	}
	return ChainA
}

// PivotRole distinguishes the pivot fixed to the lid from the ground pivot
// fixed to the box body.
type PivotRole int

const (
	LidPivot PivotRole = iota
	BoxPivot
)

func (r PivotRole) String() string {
	if r == BoxPivot {
		return "box"
	}
	return "lid"
}

// PivotID names one of the four editable pivots as a tagged pair instead of
// a parsed string.
type PivotID struct {
	Chain Chain
	Role  PivotRole
}

// ChainPivots holds one chain's pivot pair. Closed is the lid-side pivot at
// the closed pose; the open-pose position is derived, never stored.
type ChainPivots struct {
	Closed geom.Point `json:"closed"`
	Box    geom.Point `json:"box"`
}

// Open returns the lid pivot position at the open pose: the point
// reflection of Closed through the center of rotation.
func (cp ChainPivots) Open(center geom.Point) geom.Point {
	return cp.Closed.ReflectThrough(center)
}

// RodLength returns the distance between the box pivot and the lid pivot.
// The constraint-line construction guarantees the same distance to the
// open-pose lid pivot.
func (cp ChainPivots) RodLength() float64 {
	return cp.Box.Distance(cp.Closed)
}

// Layout is the full editable pivot state: one pivot pair per chain.
// Layouts are value types; snapshotting one is a plain copy.
type Layout struct {
	A ChainPivots `json:"a"`
	B ChainPivots `json:"b"`
}

// Chain returns the pivot pair for the given chain.
func (l Layout) Chain(c Chain) ChainPivots {
	if c == ChainB {
		return l.B
	}
	return l.A
}

// SetChain replaces the pivot pair for the given chain.
func (l *Layout) SetChain(c Chain, cp ChainPivots) {
	if c == ChainB {
		l.B = cp
	} else {
		l.A = cp
	}
}

// DefaultLayout seeds both chains with pivots inside the closed lid and box
// pivots on their constraint lines. The lid pivots sit between the lid
// centroid and the two top vertices of the lid cut.
func (g *Geometry) DefaultLayout() Layout {
	cen := g.closedLid.Centroid()
	var l Layout
	l.A = g.defaultChain(cen.Lerp(g.closedLid[0], 0.45))
	l.B = g.defaultChain(cen.Lerp(g.closedLid[1], 0.45))
	return l
}

// defaultChain places a chain's box pivot halfway down the constraint line
// on whichever side lands inside the box.
func (g *Geometry) defaultChain(closed geom.Point) ChainPivots {
	line := g.ConstraintLine(closed)
	dir := line.A.Sub(g.center).Normalize()
	box := g.center.Add(dir.Scale(g.params.H / 2))
	if !g.InBox(box) {
		flipped := g.center.Sub(dir.Scale(g.params.H / 2))
		if g.InBox(flipped) {
			box = flipped
		}
	}
	return ChainPivots{Closed: closed, Box: box}
}

// NormalizeLayout checks a layout that arrived from outside the editor
// (a share string or a project file) against g. A lid pivot outside the
// closed lid is an error; a box pivot off its constraint line is repaired
// by orthogonal projection, restoring the equal distance to the closed and
// open lid pivot positions.
func (g *Geometry) NormalizeLayout(l Layout) (Layout, error) {
	for _, c := range []Chain{ChainA, ChainB} {
		cp := l.Chain(c)
		if !g.InClosedLid(cp.Closed) {
			return l, fmt.Errorf("chain %s lid pivot %s is outside the closed lid", c, cp.Closed)
		}
		cp.Box = g.ConstraintLine(cp.Closed).Project(cp.Box)
		l.SetChain(c, cp)
	}
	return l, nil
}

// AdaptLayout carries a layout from an old geometry onto g, preserving each
// pivot's relative position. Lid pivots scale with the box dimensions; box
// pivots keep their signed fraction along the constraint line. Chains whose
// scaled lid pivot falls outside the new lid revert to the default chain.
func (g *Geometry) AdaptLayout(old *Geometry, l Layout) Layout {
	var out Layout
	for _, c := range []Chain{ChainA, ChainB} {
		out.SetChain(c, g.adaptChain(old, l.Chain(c)))
	}
	return out
}

func (g *Geometry) adaptChain(old *Geometry, cp ChainPivots) ChainPivots {
	op := old.params
	np := g.params
	closed := geom.Pt(cp.Closed.X*np.W/op.W, cp.Closed.Y*np.H/op.H)
	if !g.InClosedLid(closed) {
		cen := g.closedLid.Centroid()
		candidate := cen.Lerp(closed, 0.25)
		if !g.InClosedLid(candidate) {
			candidate = cen
		}
		return g.defaultChain(candidate)
	}

	// Signed fraction of the box pivot along the old constraint line.
	oldDir := old.ConstraintLine(cp.Closed).A.Sub(old.center).Normalize()
	frac := cp.Box.Sub(old.center).Dot(oldDir) / op.H
	frac = math.Max(-1, math.Min(1, frac))

	newDir := g.ConstraintLine(closed).A.Sub(g.center).Normalize()
	box := g.center.Add(newDir.Scale(frac * np.H))
	return ChainPivots{Closed: closed, Box: box}
}
