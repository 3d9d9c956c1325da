package geom

import "math"

// Circle represents a circle by center and radius.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// coincidentEps is the center-distance threshold below which two circles of
// near-equal radius are treated as coincident (infinitely many
// intersections, reported as failure).
const coincidentEps = 1e-9

// Intersect computes the intersection of two circles via the radical-line
// construction. It returns the two intersection points and true, or false
// when the circles are disjoint, nested, or coincident. Tangent circles
// return two coincident points rather than a special single-point result.
func (c Circle) Intersect(o Circle) (Point, Point, bool) {
	d := c.Center.Distance(o.Center)
	r1 := c.Radius
	r2 := o.Radius

	if d > r1+r2 || d < math.Abs(r1-r2) {
		return Point{}, Point{}, false
	}
	if d < coincidentEps && math.Abs(r1-r2) < coincidentEps {
		return Point{}, Point{}, false
	}

	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	// Floating-point noise can push r1²−a² slightly negative near tangency.
	h := math.Sqrt(math.Max(0, r1*r1-a*a))

	axis := o.Center.Sub(c.Center).Scale(1 / d)
	mid := c.Center.Add(axis.Scale(a))
	off := axis.Perp().Scale(h)

	return mid.Add(off), mid.Sub(off), true
}
