package engine

import (
	"fmt"
	"math"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// MotionState enumerates the kinematics engine lifecycle.
type MotionState int

const (
	StateUninitialized MotionState = iota
	StateClosed                    // at the closed pose, ready to step
	StateInMotion                  // somewhere along the sweep
	StateLocked                    // last step found no circle intersection
)

func (s MotionState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateInMotion:
		return "in-motion"
	case StateLocked:
		return "locked"
	default:
		return "uninitialized"
	}
}

// rodLengthTol is the relative tolerance for rod-length preservation over a
// motion sequence.
const rodLengthTol = 0.01

// BranchPolicy resolves the two-fold circle-intersection ambiguity (elbow
// up vs. elbow down). It prefers the solution closest to the previous
// output-follower position so the mechanism moves continuously; without a
// previous position it falls back to a stored branch flag.
type BranchPolicy struct {
	prev    geom.Point
	hasPrev bool
	ElbowUp bool
}

// Observe records the chosen position for future continuity decisions.
func (bp *BranchPolicy) Observe(p geom.Point) {
	bp.prev = p
	bp.hasPrev = true
}

// Reset forgets the previous position; the next choice uses the flag.
func (bp *BranchPolicy) Reset() {
	bp.hasPrev = false
}

// Choose picks one of the two intersection candidates.
func (bp *BranchPolicy) Choose(p1, p2 geom.Point) geom.Point {
	if bp.hasPrev {
		if p2.DistanceSquared(bp.prev) < p1.DistanceSquared(bp.prev) {
			return p2
		}
		return p1
	}
	if bp.ElbowUp {
		if p2.Y > p1.Y {
			return p2
		}
		return p1
	}
	if p2.Y < p1.Y {
		return p2
	}
	return p1
}

// FourBar is the transient kinematic instance created when a motion
// sequence starts. Rod lengths are frozen at construction and must hold
// (within 1%) for the remainder of the sequence. The caller owns stepping
// cadence; Step is synchronous and bounded.
type FourBar struct {
	geo *model.Geometry

	groundA, groundB geom.Point // the two box pivots
	closedA, closedB geom.Point // lid pivots at the closed pose
	driverLen        float64    // |groundA−closedA|
	followerLen      float64    // |closedA−closedB|, rigid with the lid
	outputLen        float64    // |groundB−closedB|

	inputAngle float64
	knee       geom.Point // input-follower: lid pivot A in motion
	out        geom.Point // output-follower: lid pivot B in motion
	branch     BranchPolicy
	state      MotionState
	movingLid  geom.Polygon
}

// NewFourBar builds a four-bar configuration from the current pivot
// layout, frozen at the closed pose.
func NewFourBar(geo *model.Geometry, l model.Layout) (*FourBar, error) {
	f := &FourBar{
		geo:         geo,
		groundA:     l.A.Box,
		groundB:     l.B.Box,
		closedA:     l.A.Closed,
		closedB:     l.B.Closed,
		driverLen:   l.A.RodLength(),
		followerLen: l.A.Closed.Distance(l.B.Closed),
		outputLen:   l.B.RodLength(),
	}
	if f.driverLen < 1e-9 || f.followerLen < 1e-9 || f.outputLen < 1e-9 {
		return nil, fmt.Errorf("degenerate linkage: zero-length link")
	}
	f.reset()
	return f, nil
}

// reset puts the mechanism back at the closed pose.
func (f *FourBar) reset() {
	f.knee = f.closedA
	f.out = f.closedB
	f.inputAngle = f.ClosedAngle()
	f.movingLid = f.geo.ClosedLidVertices()
	f.branch.Reset()
	f.branch.Observe(f.closedB)
	f.state = StateClosed
}

// State returns the current lifecycle state.
func (f *FourBar) State() MotionState {
	return f.state
}

// InputAngle returns the current drive angle in radians.
func (f *FourBar) InputAngle() float64 {
	return f.inputAngle
}

// ClosedAngle returns the drive angle at the closed pose.
func (f *FourBar) ClosedAngle() float64 {
	return f.closedA.Sub(f.groundA).Angle()
}

// OpenAngle returns the drive angle at the open pose, where lid pivot A
// sits at its point reflection through the center of rotation.
func (f *FourBar) OpenAngle() float64 {
	openA := f.closedA.ReflectThrough(f.geo.Center())
	return openA.Sub(f.groundA).Angle()
}

// ValidRange returns the drive range from closed to open. The sweep is
// always clockwise by convention: when the naive open angle lies
// counter-clockwise from the closed angle, 2π is subtracted.
func (f *FourBar) ValidRange() AngularRange {
	start := f.ClosedAngle()
	end := f.OpenAngle()
	if end > start {
		end -= 2 * math.Pi
	}
	return AngularRange{Start: start, End: end}
}

// Step advances the mechanism to the given drive angle. On failure (no
// circle intersection, or rod-length drift beyond 1%) the configuration
// reverts to the pre-step state and false is returned; a missing
// intersection additionally marks the mechanism locked.
func (f *FourBar) Step(theta float64) bool {
	if f.state == StateUninitialized {
		return false
	}

	knee := geom.PolarFrom(f.groundA, f.driverLen, theta)
	p1, p2, ok := geom.Circle{Center: knee, Radius: f.followerLen}.
		Intersect(geom.Circle{Center: f.groundB, Radius: f.outputLen})
	if !ok {
		f.state = StateLocked
		return false
	}
	out := f.branch.Choose(p1, p2)

	t := geom.RigidBetween(f.closedA, f.closedB, knee, out)
	lid := f.geo.ClosedLidVertices().Transform(t)

	// Drift guard: the transform and intersection are exact in theory but
	// accumulate floating error; reject a step that no longer preserves
	// the frozen link lengths.
	if relDiff(out.Distance(f.groundB), f.outputLen) > rodLengthTol ||
		relDiff(knee.Distance(out), f.followerLen) > rodLengthTol {
		return false
	}

	f.knee = knee
	f.out = out
	f.inputAngle = theta
	f.movingLid = lid
	f.branch.Observe(out)
	f.state = StateInMotion
	return true
}

// Stop ends the motion sequence, returning the mechanism to the closed
// pose.
func (f *FourBar) Stop() {
	f.reset()
}

// MovingLidVertices returns the instantaneous lid outline.
func (f *FourBar) MovingLidVertices() geom.Polygon {
	return f.movingLid.Clone()
}

// Links returns the three link segments in their current positions:
// driver (ground A to lid pivot A), follower (lid pivot A to lid pivot B)
// and output (ground B to lid pivot B).
func (f *FourBar) Links() (driver, follower, output geom.Segment) {
	driver = geom.Segment{A: f.groundA, B: f.knee}
	follower = geom.Segment{A: f.knee, B: f.out}
	output = geom.Segment{A: f.groundB, B: f.out}
	return driver, follower, output
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}
