package geom

// Segment represents a directed line segment between two points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Angle returns the direction of the segment in radians.
func (s Segment) Angle() float64 {
	return s.B.Sub(s.A).Angle()
}

// Project returns the orthogonal projection of p onto the segment, clamped
// to the segment endpoints. Points beyond either end map to the nearest
// endpoint, never to an extrapolation of the line.
func (s Segment) Project(p Point) Point {
	d := s.B.Sub(s.A)
	den := d.Dot(d)
	if den < 1e-24 {
		return s.A
	}
	t := p.Sub(s.A).Dot(d) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.A.Lerp(s.B, t)
}

// orientation classifies the turn a, b, c: >0 counter-clockwise, <0 clockwise,
// 0 collinear (within floating tolerance).
func orientation(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment reports whether collinear point p lies within the bounding box
// of segment ab.
func onSegment(a, b, p Point) bool {
	return min(a.X, b.X)-1e-12 <= p.X && p.X <= max(a.X, b.X)+1e-12 &&
		min(a.Y, b.Y)-1e-12 <= p.Y && p.Y <= max(a.Y, b.Y)+1e-12
}

// Crosses reports whether the two segments properly cross: they intersect
// at a single interior point of both. Touching endpoints and collinear
// overlap do not count, so outlines that share a boundary edge are not
// flagged.
func (s Segment) Crosses(o Segment) bool {
	const eps = 1e-9
	d1 := orientation(o.A, o.B, s.A)
	d2 := orientation(o.A, o.B, s.B)
	d3 := orientation(s.A, s.B, o.A)
	d4 := orientation(s.A, s.B, o.B)
	return ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps))
}

// Intersects reports whether the two segments share at least one point.
func (s Segment) Intersects(o Segment) bool {
	d1 := orientation(o.A, o.B, s.A)
	d2 := orientation(o.A, o.B, s.B)
	d3 := orientation(s.A, s.B, o.A)
	d4 := orientation(s.A, s.B, o.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(o.A, o.B, s.A):
		return true
	case d2 == 0 && onSegment(o.A, o.B, s.B):
		return true
	case d3 == 0 && onSegment(s.A, s.B, o.A):
		return true
	case d4 == 0 && onSegment(s.A, s.B, o.B):
		return true
	}
	return false
}
