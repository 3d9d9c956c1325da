// Package model holds the box/lid parameter set, the geometry derived from
// it (box and lid outlines, center of rotation, constraint lines) and the
// pivot layout data model for the two hinge chains.
package model

import (
	"fmt"
	"math"
)

// Params describes a box with an up-and-over lid. All lengths share one
// unit; Alpha is the closed lid cut angle in degrees.
type Params struct {
	H     float64 `json:"h" toml:"h"`         // box height
	W     float64 `json:"w" toml:"w"`         // box width
	D     float64 `json:"d" toml:"d"`         // lid depth along the top edge
	Alpha float64 `json:"alpha" toml:"alpha"` // lid cut angle in degrees, (0, 90]
	G     float64 `json:"g" toml:"g"`         // horizontal gap in the open position
}

// DefaultParams returns the parameter set a fresh document starts with.
func DefaultParams() Params {
	return Params{H: 30, W: 40, D: 10, Alpha: 75, G: 1}
}

// Validate rejects parameter sets that would produce degenerate geometry.
// Non-positive dimensions are a caller error, not a recoverable state.
func (p Params) Validate() error {
	switch {
	case p.H <= 0:
		return fmt.Errorf("height must be positive, got %g", p.H)
	case p.W <= 0:
		return fmt.Errorf("width must be positive, got %g", p.W)
	case p.D <= 0:
		return fmt.Errorf("lid depth must be positive, got %g", p.D)
	case p.G <= 0:
		return fmt.Errorf("open gap must be positive, got %g", p.G)
	case p.D >= p.W:
		return fmt.Errorf("lid depth %g must be smaller than width %g", p.D, p.W)
	case p.G >= p.W:
		return fmt.Errorf("open gap %g must be smaller than width %g", p.G, p.W)
	case p.Alpha <= 0 || p.Alpha > 90:
		return fmt.Errorf("lid angle must be in (0, 90] degrees, got %g", p.Alpha)
	}
	return nil
}

// AlphaRad returns the lid cut angle in radians.
func (p Params) AlphaRad() float64 {
	return p.Alpha * math.Pi / 180
}

// CriticalAngle returns the lid angle (radians) at which the lid
// cross-section switches between the triangular and quadrilateral case.
func (p Params) CriticalAngle() float64 {
	return math.Atan2(p.H, p.D)
}

// Diagonal returns the box diagonal, used as the natural length scale for
// penalties and tolerances.
func (p Params) Diagonal() float64 {
	return math.Hypot(p.W, p.H)
}
