// Package geom provides the 2D primitives shared by the hinge geometry
// model and the linkage engine: points, segments, circles, polygons and
// planar rigid transforms. All coordinates are in box-local length units
// with the origin at the bottom-left corner of the box.
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in box-local units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Add returns p+o, treating o as a displacement.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p−o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Dot returns the dot product of p and o taken as vectors.
func (p Point) Dot(o Point) float64 {
	return p.X*o.X + p.Y*o.Y
}

// Cross returns the 2D cross product (z component) of p and o taken as vectors.
func (p Point) Cross(o Point) float64 {
	return p.X*o.Y - p.Y*o.X
}

// Norm returns the euclidean length of p taken as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (p Point) DistanceSquared(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Midpoint returns the midpoint of two points.
func (p Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (p.X + o.X), Y: 0.5 * (p.Y + o.Y)}
}

// Lerp linearly interpolates between p and o.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{X: p.X + (o.X-p.X)*t, Y: p.Y + (o.Y-p.Y)*t}
}

// Angle returns the angle of p taken as a vector, in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Perp returns p rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Normalize returns the unit vector in the direction of p, or the zero
// point when p is (numerically) zero.
func (p Point) Normalize() Point {
	n := p.Norm()
	if n < 1e-12 {
		return Point{}
	}
	return Point{X: p.X / n, Y: p.Y / n}
}

// ReflectThrough returns the point reflection of p through c: 2c−p.
func (p Point) ReflectThrough(c Point) Point {
	return Point{X: 2*c.X - p.X, Y: 2*c.Y - p.Y}
}

// PolarFrom returns the point at distance r from origin o in direction theta.
func PolarFrom(o Point, r, theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{X: o.X + r*c, Y: o.Y + r*s}
}

// IsNaN reports whether at least one coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}
