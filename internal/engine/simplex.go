package engine

import (
	"math/rand"
	"sort"
)

// Nelder–Mead parameters. The reflection/expansion/contraction/shrink
// coefficients are dimension-adapted rather than the textbook constants;
// convergence on this objective landscape was tuned against these formulas,
// so keep them as they are.
const (
	simplexMaxIterations = 1000
	simplexConvergence   = 1e-6
	stagnationLimit      = 10
	stagnationJitter     = 0.05
)

// simplexResult is the outcome of one minimizer run.
type simplexResult struct {
	X          []float64
	Value      float64
	Iterations int
}

// vertex pairs a candidate point with its objective value.
type vertex struct {
	x []float64
	f float64
}

// minimizeSimplex runs a Nelder–Mead simplex search from start. steps gives
// the per-dimension extent of the initial simplex, scaled by spread. The
// search stops when the simplex value range drops below 1e-6 or after 1000
// iterations; after 10 iterations without improvement the simplex is
// re-seeded around the current best point with a small random perturbation.
func minimizeSimplex(objective func([]float64) float64, start, steps []float64, spread float64, rng *rand.Rand) simplexResult {
	n := len(start)
	fn := float64(n)
	reflect := 1.0
	expand := 1.0 + 2.0/fn
	contract := 0.75 - 0.5/fn
	shrink := 1.0 - 1.0/fn

	eval := func(x []float64) vertex {
		return vertex{x: x, f: objective(x)}
	}

	seed := func(around []float64, jitter float64) []vertex {
		simplex := make([]vertex, n+1)
		simplex[0] = eval(append([]float64(nil), around...))
		for i := 1; i <= n; i++ {
			x := append([]float64(nil), around...)
			x[i-1] += steps[i-1] * spread
			if jitter > 0 {
				for j := range x {
					x[j] += steps[j] * jitter * (2*rng.Float64() - 1)
				}
			}
			simplex[i] = eval(x)
		}
		return simplex
	}

	simplex := seed(start, 0)
	best := simplex[0]
	stagnant := 0

	iter := 0
	for ; iter < simplexMaxIterations; iter++ {
		sort.Slice(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })

		if simplex[0].f < best.f-1e-12 {
			best = vertex{x: append([]float64(nil), simplex[0].x...), f: simplex[0].f}
			stagnant = 0
		} else {
			stagnant++
		}

		if simplex[n].f-simplex[0].f < simplexConvergence {
			break
		}
		if stagnant >= stagnationLimit {
			simplex = seed(best.x, stagnationJitter)
			stagnant = 0
			continue
		}

		// Centroid of all vertices but the worst.
		centroid := make([]float64, n)
		for _, v := range simplex[:n] {
			for j, xj := range v.x {
				centroid[j] += xj
			}
		}
		for j := range centroid {
			centroid[j] /= fn
		}

		worst := simplex[n]
		combine := func(coeff float64) vertex {
			x := make([]float64, n)
			for j := range x {
				x[j] = centroid[j] + coeff*(centroid[j]-worst.x[j])
			}
			return eval(x)
		}

		reflected := combine(reflect)
		switch {
		case reflected.f < simplex[0].f:
			expanded := combine(expand)
			if expanded.f < reflected.f {
				simplex[n] = expanded
			} else {
				simplex[n] = reflected
			}
		case reflected.f < simplex[n-1].f:
			simplex[n] = reflected
		default:
			var contracted vertex
			if reflected.f < worst.f {
				contracted = combine(contract)
			} else {
				contracted = combine(-contract)
			}
			if contracted.f < min(reflected.f, worst.f) {
				simplex[n] = contracted
			} else {
				// Shrink everything toward the best vertex.
				for i := 1; i <= n; i++ {
					x := make([]float64, n)
					for j := range x {
						x[j] = simplex[0].x[j] + shrink*(simplex[i].x[j]-simplex[0].x[j])
					}
					simplex[i] = eval(x)
				}
			}
		}
	}

	sort.Slice(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })
	if simplex[0].f < best.f {
		best = simplex[0]
	}
	return simplexResult{X: best.x, Value: best.f, Iterations: iter}
}
