package geom

import "math"

var inf = math.Inf(1)

// RigidTransform is a planar rotation followed by a translation. It
// preserves lengths and angles (no scaling or reflection).
type RigidTransform struct {
	cos, sin float64
	t        Point
}

// IdentityTransform returns the transform that maps every point to itself.
func IdentityTransform() RigidTransform {
	return RigidTransform{cos: 1}
}

// RigidBetween returns the unique rigid transform that carries the segment
// fromA-fromB onto the segment toA-toB, assuming both segments have the
// same length. The rotation is the angle difference between the two
// segments and the translation aligns the start points.
func RigidBetween(fromA, fromB, toA, toB Point) RigidTransform {
	theta := toB.Sub(toA).Angle() - fromB.Sub(fromA).Angle()
	s, c := math.Sincos(theta)
	rot := Point{
		X: c*fromA.X - s*fromA.Y,
		Y: s*fromA.X + c*fromA.Y,
	}
	return RigidTransform{cos: c, sin: s, t: toA.Sub(rot)}
}

// Apply transforms a single point.
func (t RigidTransform) Apply(p Point) Point {
	return Point{
		X: t.cos*p.X - t.sin*p.Y + t.t.X,
		Y: t.sin*p.X + t.cos*p.Y + t.t.Y,
	}
}

// Angle returns the rotation component in radians.
func (t RigidTransform) Angle() float64 {
	return math.Atan2(t.sin, t.cos)
}

// Translation returns the translation component.
func (t RigidTransform) Translation() Point {
	return t.t
}
