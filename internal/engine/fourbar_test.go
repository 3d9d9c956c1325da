package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

func defaultTestGeometry(t *testing.T) *model.Geometry {
	t.Helper()
	geo, err := model.NewGeometry(model.DefaultParams())
	require.NoError(t, err)
	return geo
}

// parallelogramLayout builds a linkage whose two rods are parallel and equal,
// so the coupler translates without rotating and every drive angle within
// reach has a solution.
func parallelogramLayout() model.Layout {
	return model.Layout{
		A: model.ChainPivots{Closed: geom.Pt(10, 20), Box: geom.Pt(10, 10)},
		B: model.ChainPivots{Closed: geom.Pt(20, 20), Box: geom.Pt(20, 10)},
	}
}

// tangentLayout builds a linkage that is exactly at the fold point in the
// closed pose: the follower and output circles touch, and any clockwise
// drive motion separates them.
func tangentLayout() model.Layout {
	return model.Layout{
		A: model.ChainPivots{Closed: geom.Pt(30, 20), Box: geom.Pt(30, 10)},
		B: model.ChainPivots{Closed: geom.Pt(25, 20), Box: geom.Pt(20, 20)},
	}
}

func TestNewFourBar_StartsClosed(t *testing.T) {
	geo := defaultTestGeometry(t)
	f, err := NewFourBar(geo, geo.DefaultLayout())
	require.NoError(t, err)

	assert.Equal(t, StateClosed, f.State())
	assert.Equal(t, geo.ClosedLidVertices(), f.MovingLidVertices())
	assert.InDelta(t, f.ClosedAngle(), f.InputAngle(), 1e-12)
}

func TestNewFourBar_RejectsZeroLengthLink(t *testing.T) {
	geo := defaultTestGeometry(t)
	l := geo.DefaultLayout()
	l.A.Box = l.A.Closed // zero driver

	_, err := NewFourBar(geo, l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate linkage")
}

func TestValidRange_ClockwiseConvention(t *testing.T) {
	geo := defaultTestGeometry(t)
	f, err := NewFourBar(geo, geo.DefaultLayout())
	require.NoError(t, err)

	r := f.ValidRange()
	assert.LessOrEqual(t, r.End, r.Start, "sweep must run clockwise")
	assert.GreaterOrEqual(t, r.Sweep(), -2*math.Pi)
}

func TestStep_ParallelogramTranslates(t *testing.T) {
	geo := defaultTestGeometry(t)
	f, err := NewFourBar(geo, parallelogramLayout())
	require.NoError(t, err)

	offset := geom.Pt(10, 0) // closedB - closedA, constant for a parallelogram
	r := f.ValidRange()
	for i := 1; i <= 10; i++ {
		theta := r.Start + r.Sweep()*float64(i)/10
		require.True(t, f.Step(theta), "step %d should succeed", i)

		_, follower, _ := f.Links()
		got := follower.B.Sub(follower.A)
		assert.InDelta(t, offset.X, got.X, 1e-6)
		assert.InDelta(t, offset.Y, got.Y, 1e-6)
	}
	assert.Equal(t, StateInMotion, f.State())
}

func TestStep_Idempotent(t *testing.T) {
	geo := defaultTestGeometry(t)
	f, err := NewFourBar(geo, parallelogramLayout())
	require.NoError(t, err)

	r := f.ValidRange()
	theta := r.Start + r.Sweep()/2
	require.True(t, f.Step(theta))
	first := f.MovingLidVertices()
	require.True(t, f.Step(theta))
	second := f.MovingLidVertices()

	for i := range first {
		assert.InDelta(t, first[i].X, second[i].X, 1e-9)
		assert.InDelta(t, first[i].Y, second[i].Y, 1e-9)
	}
}

func TestStep_LockRetainsLastPose(t *testing.T) {
	geo := defaultTestGeometry(t)
	f, err := NewFourBar(geo, tangentLayout())
	require.NoError(t, err)

	before := f.MovingLidVertices()
	angleBefore := f.InputAngle()

	// Any clockwise motion from the tangent pose pulls the follower and
	// output circles apart.
	ok := f.Step(f.ClosedAngle() - 0.1)
	assert.False(t, ok)
	assert.Equal(t, StateLocked, f.State())
	assert.Equal(t, before, f.MovingLidVertices(), "locked step must not move the lid")
	assert.Equal(t, angleBefore, f.InputAngle())
}

func TestStop_ReturnsToClosedPose(t *testing.T) {
	geo := defaultTestGeometry(t)
	f, err := NewFourBar(geo, parallelogramLayout())
	require.NoError(t, err)

	r := f.ValidRange()
	require.True(t, f.Step(r.Start+r.Sweep()/3))
	f.Stop()

	assert.Equal(t, StateClosed, f.State())
	assert.Equal(t, geo.ClosedLidVertices(), f.MovingLidVertices())
}

func TestStep_PreservesRodLengths(t *testing.T) {
	geo := defaultTestGeometry(t)
	layout := geo.DefaultLayout()
	f, err := NewFourBar(geo, layout)
	require.NoError(t, err)

	r := f.ValidRange()
	for i := 0; i <= 20; i++ {
		theta := r.Start + r.Sweep()*float64(i)/20
		if !f.Step(theta) {
			break
		}
		driver, follower, output := f.Links()
		assert.InDelta(t, layout.A.RodLength(), driver.Length(), layout.A.RodLength()*0.01)
		assert.InDelta(t, layout.B.RodLength(), output.Length(), layout.B.RodLength()*0.01)
		assert.InDelta(t, layout.A.Closed.Distance(layout.B.Closed), follower.Length(),
			layout.A.Closed.Distance(layout.B.Closed)*0.01)
	}
}

func TestBranchPolicy_ContinuityBeatsFlag(t *testing.T) {
	var bp BranchPolicy
	bp.ElbowUp = true

	up := geom.Pt(0, 5)
	down := geom.Pt(0, -5)

	// Without history the flag decides.
	assert.Equal(t, up, bp.Choose(up, down))

	// With history, the closer candidate wins even against the flag.
	bp.Observe(geom.Pt(0, -4))
	assert.Equal(t, down, bp.Choose(up, down))

	bp.Reset()
	assert.Equal(t, up, bp.Choose(up, down))
}

func TestMotionStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "in-motion", StateInMotion.String())
	assert.Equal(t, "locked", StateLocked.String())
}
