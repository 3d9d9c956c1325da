package engine

import "github.com/hugogrimmett/hinge-generator-sub000/internal/geom"

// AngularRange is a drive-angle interval in radians. Start is the closed
// pose, End the open pose; End ≤ Start because the sweep is clockwise.
type AngularRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Sweep returns the signed angular extent (End − Start, non-positive).
func (r AngularRange) Sweep() float64 {
	return r.End - r.Start
}

// reachSamples is the number of sample intervals across the drive range;
// samples+1 angles are tested including both endpoints.
const reachSamples = 360

// RangeReachable reports whether the mechanism can traverse its full drive
// range without locking. It samples 361 evenly spaced angles across the
// clockwise arc from closed to open and requires the follower/output
// circle intersection to exist at every one: a single locked sample makes
// the whole path unreachable, since the mechanism cannot pass through it
// even momentarily.
func (f *FourBar) RangeReachable() bool {
	r := f.ValidRange()
	output := geom.Circle{Center: f.groundB, Radius: f.outputLen}
	for i := 0; i <= reachSamples; i++ {
		theta := r.Start + r.Sweep()*float64(i)/reachSamples
		knee := geom.PolarFrom(f.groundA, f.driverLen, theta)
		follower := geom.Circle{Center: knee, Radius: f.followerLen}
		if _, _, ok := follower.Intersect(output); !ok {
			return false
		}
	}
	return true
}

// IsValidRangeReachable builds a four-bar configuration from the layout
// and checks the full drive range. Layouts that cannot even form a linkage
// (a zero-length link) are unreachable.
func (e *Editor) IsValidRangeReachable() bool {
	f, err := NewFourBar(e.geo, e.layout)
	if err != nil {
		return false
	}
	return f.RangeReachable()
}
