package model

import (
	"math"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
)

// Geometry is the derived geometry for one parameter set: box and lid
// outlines plus the center of rotation. A parameter change produces a new
// Geometry; instances are immutable once constructed.
type Geometry struct {
	params    Params
	center    geom.Point
	box       geom.Polygon
	closedLid geom.Polygon
	openLid   geom.Polygon
}

// NewGeometry validates the parameters and derives all outlines.
func NewGeometry(p Params) (*Geometry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &Geometry{
		params: p,
		center: geom.Pt((p.W-p.G)/2, p.H),
	}

	alpha := p.AlphaRad()
	if alpha <= p.CriticalAngle() {
		// Shallow cut: the lid cut line reaches the right wall before the
		// bottom. Box keeps five vertices, lid is a triangle.
		wallY := p.H - p.D*math.Tan(alpha)
		g.box = geom.Polygon{
			geom.Pt(0, 0),
			geom.Pt(p.W, 0),
			geom.Pt(p.W, wallY),
			geom.Pt(p.W-p.D, p.H),
			geom.Pt(0, p.H),
		}
		g.closedLid = geom.Polygon{
			geom.Pt(p.W-p.D, p.H),
			geom.Pt(p.W, p.H),
			geom.Pt(p.W, wallY),
		}
	} else {
		// Steep cut: the cut line reaches the bottom edge. Box and lid are
		// both quadrilaterals. At alpha == critical the two cases meet at
		// the corner (w, 0), so the boundary is continuous across the
		// branch.
		bottomX := p.W - p.D + p.H/math.Tan(alpha)
		g.box = geom.Polygon{
			geom.Pt(0, 0),
			geom.Pt(bottomX, 0),
			geom.Pt(p.W-p.D, p.H),
			geom.Pt(0, p.H),
		}
		g.closedLid = geom.Polygon{
			geom.Pt(p.W-p.D, p.H),
			geom.Pt(p.W, p.H),
			geom.Pt(p.W, 0),
			geom.Pt(bottomX, 0),
		}
	}

	g.openLid = make(geom.Polygon, len(g.closedLid))
	for i, v := range g.closedLid {
		g.openLid[i] = v.ReflectThrough(g.center)
	}

	return g, nil
}

// Params returns the parameter set this geometry was derived from.
func (g *Geometry) Params() Params {
	return g.params
}

// Center returns the center of rotation: the fixed point about which the
// closed and open lid poses are point-symmetric.
func (g *Geometry) Center() geom.Point {
	return g.center
}

// BoxVertices returns the box outline (4 or 5 vertices depending on the
// critical-angle branch).
func (g *Geometry) BoxVertices() geom.Polygon {
	return g.box.Clone()
}

// ClosedLidVertices returns the lid outline in the closed position (3 or 4
// vertices).
func (g *Geometry) ClosedLidVertices() geom.Polygon {
	return g.closedLid.Clone()
}

// OpenLidVertices returns the lid outline in the open position, the point
// reflection of the closed outline through the center of rotation.
func (g *Geometry) OpenLidVertices() geom.Polygon {
	return g.openLid.Clone()
}

// InClosedLid reports whether p lies inside the closed lid outline.
func (g *Geometry) InClosedLid(p geom.Point) bool {
	return g.closedLid.Contains(p)
}

// InBox reports whether p lies inside the box outline.
func (g *Geometry) InBox(p geom.Point) bool {
	return g.box.Contains(p)
}

// ConstraintLine returns the segment a chain's box pivot must lie on:
// the line through the center of rotation perpendicular to the direction
// from the center to the closed lid pivot, extended H either way. Any point on it is
// equidistant from the closed and open positions of the lid pivot.
func (g *Geometry) ConstraintLine(closed geom.Point) geom.Segment {
	dir := closed.Sub(g.center).Perp().Normalize()
	ext := dir.Scale(g.params.H)
	return geom.Segment{
		A: g.center.Add(ext),
		B: g.center.Sub(ext),
	}
}
