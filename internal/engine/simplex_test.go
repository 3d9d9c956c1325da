package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimizeSimplex_Sphere(t *testing.T) {
	target := []float64{3, -2, 0.5}
	sphere := func(x []float64) float64 {
		var s float64
		for i, xi := range x {
			d := xi - target[i]
			s += d * d
		}
		return s
	}

	rng := rand.New(rand.NewSource(1))
	r := minimizeSimplex(sphere, []float64{0, 0, 0}, []float64{1, 1, 1}, 1.0, rng)

	assert.Less(t, r.Value, 1e-4, "sphere minimum should be found")
	for i, xi := range r.X {
		assert.InDelta(t, target[i], xi, 1e-2, "dimension %d", i)
	}
	assert.Greater(t, r.Iterations, 0)
	assert.LessOrEqual(t, r.Iterations, simplexMaxIterations)
}

func TestMinimizeSimplex_RespectsIterationCap(t *testing.T) {
	// An objective with no descent direction never converges; the run must
	// still terminate at the iteration cap.
	noisy := func(x []float64) float64 {
		return math.Sin(1000*x[0]) + math.Sin(1000*x[1])
	}
	rng := rand.New(rand.NewSource(7))
	r := minimizeSimplex(noisy, []float64{0, 0}, []float64{1, 1}, 1.0, rng)
	assert.LessOrEqual(t, r.Iterations, simplexMaxIterations)
	assert.False(t, math.IsNaN(r.Value))
}

func TestMinimizeSimplex_StartAtMinimum(t *testing.T) {
	quad := func(x []float64) float64 {
		return x[0]*x[0] + x[1]*x[1]
	}
	rng := rand.New(rand.NewSource(3))
	r := minimizeSimplex(quad, []float64{0, 0}, []float64{0.1, 0.1}, 1.0, rng)
	assert.Less(t, r.Value, 1e-6)
}
