package geom

// Polygon represents a closed polygon as a sequence of vertices. The
// polygon is implicitly closed: the last vertex connects back to the first.
type Polygon []Point

// Clone returns an independent copy of the polygon.
func (pg Polygon) Clone() Polygon {
	out := make(Polygon, len(pg))
	copy(out, pg)
	return out
}

// Contains reports whether p lies inside the polygon, using the standard
// ray-casting parity test. Points exactly on the boundary may fall on
// either side.
func (pg Polygon) Contains(p Point) bool {
	inside := false
	n := len(pg)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi := pg[i]
		vj := pg[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// Centroid returns the vertex average of the polygon.
func (pg Polygon) Centroid() Point {
	if len(pg) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pg {
		c.X += p.X
		c.Y += p.Y
	}
	return c.Scale(1 / float64(len(pg)))
}

// Edges returns the boundary segments of the polygon, including the
// closing edge from the last vertex back to the first.
func (pg Polygon) Edges() []Segment {
	n := len(pg)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, n)
	for i := range pg {
		edges[i] = Segment{A: pg[i], B: pg[(i+1)%n]}
	}
	return edges
}

// IntersectsEdges reports whether any boundary edge of pg properly
// crosses any boundary edge of other. Outlines that merely share a
// boundary (the closed lid resting against the box) do not count, and
// containment without an edge crossing is not detected.
func (pg Polygon) IntersectsEdges(other Polygon) bool {
	for _, e := range pg.Edges() {
		for _, f := range other.Edges() {
			if e.Crosses(f) {
				return true
			}
		}
	}
	return false
}

// Transform applies a rigid transform to every vertex.
func (pg Polygon) Transform(t RigidTransform) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = t.Apply(p)
	}
	return out
}

// MaxVertexDistance returns the largest pairwise distance between
// corresponding vertices of two equally sized polygons. It returns +Inf
// when the vertex counts differ.
func (pg Polygon) MaxVertexDistance(other Polygon) float64 {
	if len(pg) != len(other) {
		return inf
	}
	var worst float64
	for i, p := range pg {
		if d := p.Distance(other[i]); d > worst {
			worst = d
		}
	}
	return worst
}
