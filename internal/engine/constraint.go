// Package engine implements the hinge linkage core: the constraint editor
// that keeps pivot layouts self-consistent, the four-bar kinematics that
// drives the lid through its motion, the reachability check over the full
// angular range, and the simplex-based synthesis optimizer.
package engine

import (
	"math"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// Editor applies pivot edits while honoring the layout invariants: lid
// pivots stay inside the closed lid, box pivots stay on their constraint
// lines, and (optionally) both chains keep equal rod lengths. A rejected
// edit leaves the layout exactly as it was; partial updates are never
// observable.
type Editor struct {
	geo         *model.Geometry
	layout      model.Layout
	equalLength bool
}

// NewEditor wraps a geometry and a starting layout.
func NewEditor(geo *model.Geometry, layout model.Layout) *Editor {
	return &Editor{geo: geo, layout: layout}
}

// Layout returns a copy of the current pivot layout.
func (e *Editor) Layout() model.Layout {
	return e.layout
}

// Geometry returns the geometry the editor operates on.
func (e *Editor) Geometry() *model.Geometry {
	return e.geo
}

// EqualLength reports whether the equal-rod-length option is active.
func (e *Editor) EqualLength() bool {
	return e.equalLength
}

// SetEqualLength toggles the equal-rod-length option. Enabling it
// immediately adjusts chain B to match chain A's rod length; if no
// admissible adjustment exists the option stays off and false is returned.
func (e *Editor) SetEqualLength(on bool) bool {
	if !on {
		e.equalLength = false
		return true
	}
	snapshot := e.layout
	if !e.matchChain(model.ChainB, e.layout.A.RodLength()) {
		e.layout = snapshot
		return false
	}
	e.equalLength = true
	return true
}

// MovePivot routes a proposed pivot position to the handler for its role.
// It returns false and leaves all state untouched when the move violates a
// constraint.
func (e *Editor) MovePivot(id model.PivotID, p geom.Point) bool {
	if id.Role == model.BoxPivot {
		return e.moveBoxPivot(id.Chain, p)
	}
	return e.moveLidPivot(id.Chain, p)
}

// moveLidPivot relocates a chain's closed-pose lid pivot. The open pivot
// and constraint line follow by construction; the box pivot is re-projected
// onto the new constraint line at its previous distance from the center,
// picking whichever side is closer to its old position so drags never jump.
func (e *Editor) moveLidPivot(c model.Chain, p geom.Point) bool {
	if !e.geo.InClosedLid(p) {
		return false
	}

	snapshot := e.layout
	cp := e.layout.Chain(c)
	center := e.geo.Center()

	dist := cp.Box.Distance(center)
	dir := e.geo.ConstraintLine(p).A.Sub(center).Normalize()
	near := center.Add(dir.Scale(dist))
	far := center.Sub(dir.Scale(dist))
	if far.DistanceSquared(cp.Box) < near.DistanceSquared(cp.Box) {
		near = far
	}

	cp.Closed = p
	cp.Box = near
	e.layout.SetChain(c, cp)

	if e.equalLength && !e.matchChain(c.Other(), cp.RodLength()) {
		e.layout = snapshot
		return false
	}
	return true
}

// moveBoxPivot projects a proposed ground pivot position orthogonally onto
// the chain's constraint-line segment, clamped to the segment ends.
func (e *Editor) moveBoxPivot(c model.Chain, p geom.Point) bool {
	snapshot := e.layout
	cp := e.layout.Chain(c)

	cp.Box = e.geo.ConstraintLine(cp.Closed).Project(p)
	e.layout.SetChain(c, cp)

	if e.equalLength && !e.matchChain(c.Other(), cp.RodLength()) {
		e.layout = snapshot
		return false
	}
	return true
}

// Equal-length search parameters: the box pivot sweep moves in steps of
// height/50 up to 20 steps in each direction on both sides of the
// constraint line; the lid pivot search walks the rod circle in 1° steps.
const (
	sweepSteps      = 20
	sweepDivisor    = 50.0
	circleStepsHalf = 180
)

// matchChain adjusts chain c so its rod length equals target. It first
// tries to keep the chain's box pivot where it is, searching the circle of
// the target radius around it for a lid pivot inside the closed lid. If
// that fails, the box pivot is swept along its constraint line (both
// directions, both sides) retrying the circle search at each candidate.
// Returns false when no admissible adjustment exists; the caller is
// responsible for rolling back.
func (e *Editor) matchChain(c model.Chain, target float64) bool {
	if target <= 0 {
		return false
	}
	cp := e.layout.Chain(c)
	center := e.geo.Center()
	h := e.geo.Params().H

	dir := e.geo.ConstraintLine(cp.Closed).A.Sub(center).Normalize()
	signed := cp.Box.Sub(center).Dot(dir)
	step := h / sweepDivisor

	for _, side := range []float64{1, -1} {
		base := side * signed
		for k := 0; k <= sweepSteps; k++ {
			for _, sgn := range []float64{1, -1} {
				if k == 0 && sgn < 0 {
					continue
				}
				s := base + sgn*float64(k)*step
				candidate := center.Add(dir.Scale(s))
				if e.placeChainOnCircle(c, candidate, target) {
					return true
				}
			}
		}
	}
	return false
}

// placeChainOnCircle searches the circle of radius target around box for a
// lid pivot that is inside the closed lid and within reach of the center.
// Angles are tried in 1° steps alternating clockwise/counter-clockwise from
// the chain's previous rod orientation. On success the chain is rewritten
// with the exact rod length restored via the constraint-line construction.
func (e *Editor) placeChainOnCircle(c model.Chain, box geom.Point, target float64) bool {
	cp := e.layout.Chain(c)
	center := e.geo.Center()
	h := e.geo.Params().H
	pref := cp.Closed.Sub(box).Angle()

	for da := 0; da <= circleStepsHalf; da++ {
		for _, sgn := range []float64{1, -1} {
			if sgn < 0 && (da == 0 || da == circleStepsHalf) {
				continue
			}
			theta := pref + sgn*float64(da)*math.Pi/180
			p := geom.PolarFrom(box, target, theta)
			if !e.geo.InClosedLid(p) {
				continue
			}
			reach := p.Distance(center)
			if reach > target {
				continue
			}
			// Place the box pivot so the rod length is exactly target:
			// it sits on the new constraint line at sqrt(target²−reach²)
			// from the center, on the side nearest the candidate.
			off := math.Sqrt(target*target - reach*reach)
			if off > h {
				continue
			}
			dir := e.geo.ConstraintLine(p).A.Sub(center).Normalize()
			near := center.Add(dir.Scale(off))
			far := center.Sub(dir.Scale(off))
			if far.DistanceSquared(box) < near.DistanceSquared(box) {
				near = far
			}
			e.layout.SetChain(c, model.ChainPivots{Closed: p, Box: near})
			return true
		}
	}
	return false
}
