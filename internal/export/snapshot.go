// Package export renders a hinge configuration to the formats the core
// does not know about: a PDF drilling template, a DXF drawing, an SVG
// motion snapshot and an XLSX coordinate table. It consumes only the
// read accessors of the geometry and engine packages.
package export

import (
	"github.com/hugogrimmett/hinge-generator-sub000/internal/engine"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// Snapshot bundles everything the renderers read: the derived geometry,
// the pivot layout, the drive range and the validity verdict.
type Snapshot struct {
	Geo    *model.Geometry
	Layout model.Layout
	Range  engine.AngularRange
	Valid  bool
}

// BuildSnapshot captures the current state of an editor for rendering.
func BuildSnapshot(e *engine.Editor) Snapshot {
	snap := Snapshot{
		Geo:    e.Geometry(),
		Layout: e.Layout(),
		Valid:  e.IsValidRangeReachable(),
	}
	if f, err := engine.NewFourBar(snap.Geo, snap.Layout); err == nil {
		snap.Range = f.ValidRange()
	}
	return snap
}
