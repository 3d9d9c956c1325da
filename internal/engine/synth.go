package engine

import (
	"math"
	"math/rand"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// SynthesisFailure classifies why a synthesized layout was rejected.
type SynthesisFailure int

const (
	FailureNone SynthesisFailure = iota
	FailureUnreachablePose
	FailureBoxLidIntersection
	FailureRodLengthOutOfRange
	FailureExcessiveError
	FailureNumericallyInvalid
)

func (f SynthesisFailure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureUnreachablePose:
		return "unreachable pose"
	case FailureBoxLidIntersection:
		return "lid intersects box"
	case FailureRodLengthOutOfRange:
		return "rod length out of range"
	case FailureExcessiveError:
		return "excessive position error"
	default:
		return "numerically invalid solution"
	}
}

// SynthesisOptions tunes the optimizer.
type SynthesisOptions struct {
	// EqualLengthWeight penalizes |rod1−rod2| in the objective; zero
	// disables the preference.
	EqualLengthWeight float64
	// Seed makes runs reproducible.
	Seed int64
}

// SynthesisResult reports the best layout found plus a structured verdict.
type SynthesisResult struct {
	Layout         model.Layout
	Objective      float64
	Iterations     int
	Restarts       int
	Valid          bool
	Failure        SynthesisFailure
	MaxVertexError float64
}

// Objective penalties and limits. originWeight multiplies the summed
// ground-pivot distances from the origin divided by the box diagonal; the
// normalization keeps the term scale-free, so the weight is not directly
// comparable to the unnormalized pose errors.
const (
	infeasiblePenalty = 1e6
	originWeight      = 10.0
	maxVertexError    = 1.0
	synthesisRestarts = 3
)

// driveFractions are the drive angles (as fractions of the closed-to-open
// sweep, i.e. θ/π for θ in {0, π/4, π/2, 3π/4, π}) at which feasibility and
// lid/box clearance are tested.
var driveFractions = [...]float64{0, 0.25, 0.5, 0.75, 1}

// synthesizer carries the immutable context of one synthesis run. The
// decision vector is [b1.x, b1.y, b2.x, b2.y, rod1, rod2].
type synthesizer struct {
	geo         *model.Geometry
	opts        SynthesisOptions
	lidCentroid geom.Point
}

// Synthesize searches for ground-pivot positions and rod lengths that give
// a valid linkage for the geometry's closed and open target poses, using
// Nelder–Mead with three restarts of increasing initial spread. The result
// always carries the best layout found; Valid and Failure say whether it
// survived post-solve validation.
func Synthesize(geo *model.Geometry, opts SynthesisOptions) SynthesisResult {
	s := &synthesizer{
		geo:         geo,
		opts:        opts,
		lidCentroid: geo.ClosedLidVertices().Centroid(),
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	p := geo.Params()
	seed := geo.DefaultLayout()
	start := []float64{
		seed.A.Box.X, seed.A.Box.Y,
		seed.B.Box.X, seed.B.Box.Y,
		seed.A.RodLength(), seed.B.RodLength(),
	}
	steps := []float64{p.W / 4, p.H / 4, p.W / 4, p.H / 4, p.Diagonal() / 8, p.Diagonal() / 8}

	// The objective is multimodal; a single run converges to whichever
	// basin the initial simplex lands in, so restart with wider spreads
	// and keep the best.
	best := simplexResult{Value: math.Inf(1)}
	spreads := [...]float64{1.0, 1.5, 2.0}
	iterations := 0
	for _, spread := range spreads[:synthesisRestarts] {
		r := minimizeSimplex(s.objective, start, steps, spread, rng)
		iterations += r.Iterations
		if r.Value < best.Value {
			best = r
		}
	}

	result := SynthesisResult{
		Objective:  best.Value,
		Iterations: iterations,
		Restarts:   synthesisRestarts,
	}
	layout, ok := s.decode(best.X)
	if !ok {
		result.Failure = FailureNumericallyInvalid
		return result
	}
	result.Layout = layout
	result.Valid, result.Failure, result.MaxVertexError = s.validate(layout, best.X[4], best.X[5])
	return result
}

// decode turns a decision vector into a pivot layout. Each chain's lid
// pivot follows from its ground pivot and rod length: it sits on the line
// through the center perpendicular to the center-to-ground direction, at the offset that
// makes the rod length exact, on the side facing the lid.
func (s *synthesizer) decode(x []float64) (model.Layout, bool) {
	var l model.Layout
	b1 := geom.Pt(x[0], x[1])
	b2 := geom.Pt(x[2], x[3])
	p1, ok1 := s.lidPivotFor(b1, x[4])
	p2, ok2 := s.lidPivotFor(b2, x[5])
	if !ok1 || !ok2 {
		return l, false
	}
	l.A = model.ChainPivots{Closed: p1, Box: b1}
	l.B = model.ChainPivots{Closed: p2, Box: b2}
	return l, true
}

func (s *synthesizer) lidPivotFor(b geom.Point, rod float64) (geom.Point, bool) {
	if rod <= 0 || math.IsNaN(rod) || b.IsNaN() {
		return geom.Point{}, false
	}
	center := s.geo.Center()
	v := b.Sub(center)
	d := v.Norm()
	if rod < d {
		// The ground pivot is farther from the center than the rod is
		// long; no symmetric lid pivot exists.
		return geom.Point{}, false
	}
	var n geom.Point
	if d < 1e-9 {
		n = geom.Pt(1, 0)
	} else {
		n = v.Perp().Normalize()
	}
	off := math.Sqrt(rod*rod - d*d)
	hi := center.Add(n.Scale(off))
	lo := center.Sub(n.Scale(off))
	if lo.DistanceSquared(s.lidCentroid) < hi.DistanceSquared(s.lidCentroid) {
		return lo, true
	}
	return hi, true
}

// objective scores a decision vector: hard 1e6 penalties for infeasible
// vectors, unreachable drive angles and lid/box edge intersections, plus
// the closed/open pose errors, a diagonal-normalized origin-distance term
// discouraging pivots far outside the box, and the optional unequal-rod
// penalty.
func (s *synthesizer) objective(x []float64) float64 {
	rod1, rod2 := x[4], x[5]
	if rod1 <= 0 || rod2 <= 0 {
		return infeasiblePenalty
	}
	layout, ok := s.decode(x)
	if !ok {
		return infeasiblePenalty
	}
	f, err := NewFourBar(s.geo, layout)
	if err != nil {
		return infeasiblePenalty
	}

	box := s.geo.BoxVertices()
	closed := s.geo.ClosedLidVertices()
	open := s.geo.OpenLidVertices()
	r := f.ValidRange()

	var score float64
	for _, frac := range driveFractions {
		theta := r.Start + r.Sweep()*frac
		if !f.Step(theta) {
			score += infeasiblePenalty
			continue
		}
		pose := f.MovingLidVertices()
		if pose.IntersectsEdges(box) {
			score += infeasiblePenalty
		}
		switch frac {
		case 0:
			score += pose.MaxVertexDistance(closed)
		case 1:
			score += pose.MaxVertexDistance(open)
		}
	}

	b1 := geom.Pt(x[0], x[1])
	b2 := geom.Pt(x[2], x[3])
	score += originWeight * (b1.Norm() + b2.Norm()) / s.geo.Params().Diagonal()
	if s.opts.EqualLengthWeight > 0 {
		score += s.opts.EqualLengthWeight * math.Abs(rod1-rod2)
	}
	return score
}

// validate re-runs the feasibility and error checks on the final layout
// and classifies any violation instead of collapsing it to a boolean.
func (s *synthesizer) validate(layout model.Layout, rod1, rod2 float64) (bool, SynthesisFailure, float64) {
	if math.IsNaN(rod1) || math.IsNaN(rod2) ||
		layout.A.Closed.IsNaN() || layout.A.Box.IsNaN() ||
		layout.B.Closed.IsNaN() || layout.B.Box.IsNaN() {
		return false, FailureNumericallyInvalid, 0
	}

	p := s.geo.Params()
	lo := math.Max(0.25*p.D, 10)
	hi := 2 * p.Diagonal()
	if rod1 < lo || rod1 > hi || rod2 < lo || rod2 > hi {
		return false, FailureRodLengthOutOfRange, 0
	}

	f, err := NewFourBar(s.geo, layout)
	if err != nil {
		return false, FailureNumericallyInvalid, 0
	}
	if !f.RangeReachable() {
		return false, FailureUnreachablePose, 0
	}

	box := s.geo.BoxVertices()
	closed := s.geo.ClosedLidVertices()
	open := s.geo.OpenLidVertices()
	r := f.ValidRange()

	var worst float64
	for _, frac := range []float64{0, 0.5, 1} {
		if !f.Step(r.Start + r.Sweep()*frac) {
			return false, FailureUnreachablePose, worst
		}
		pose := f.MovingLidVertices()
		if pose.IntersectsEdges(box) {
			return false, FailureBoxLidIntersection, worst
		}
		switch frac {
		case 0:
			worst = math.Max(worst, pose.MaxVertexDistance(closed))
		case 1:
			worst = math.Max(worst, pose.MaxVertexDistance(open))
		}
	}
	if worst > maxVertexError {
		return false, FailureExcessiveError, worst
	}
	return true, FailureNone, worst
}
