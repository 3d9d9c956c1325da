package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// pivotMarkRadius is the circle radius used for pivot marks, in drawing
// units (same units as the box parameters).
const pivotMarkRadius = 0.5

// ExportDXF writes the hinge geometry as a layered DXF drawing: box
// outline, closed and open lid outlines, constraint lines and pivot marks
// per chain.
func ExportDXF(path string, snap Snapshot) error {
	d := dxf.NewDrawing()

	if err := drawPolygonLayer(d, "BOX", snap.Geo.BoxVertices()); err != nil {
		return err
	}
	if err := drawPolygonLayer(d, "LID_CLOSED", snap.Geo.ClosedLidVertices()); err != nil {
		return err
	}
	if err := drawPolygonLayer(d, "LID_OPEN", snap.Geo.OpenLidVertices()); err != nil {
		return err
	}

	if _, err := d.AddLayer("CONSTRAINT", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("dxf layer CONSTRAINT: %w", err)
	}
	for _, c := range []model.Chain{model.ChainA, model.ChainB} {
		line := snap.Geo.ConstraintLine(snap.Layout.Chain(c).Closed)
		if _, err := d.Line(line.A.X, line.A.Y, 0, line.B.X, line.B.Y, 0); err != nil {
			return fmt.Errorf("dxf constraint line %s: %w", c, err)
		}
	}

	center := snap.Geo.Center()
	for _, c := range []model.Chain{model.ChainA, model.ChainB} {
		layer := "PIVOTS_" + c.String()
		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("dxf layer %s: %w", layer, err)
		}
		cp := snap.Layout.Chain(c)
		for _, p := range []geom.Point{cp.Closed, cp.Open(center), cp.Box} {
			if _, err := d.Circle(p.X, p.Y, 0, pivotMarkRadius); err != nil {
				return fmt.Errorf("dxf pivot mark %s: %w", c, err)
			}
		}
		if _, err := d.Line(cp.Box.X, cp.Box.Y, 0, cp.Closed.X, cp.Closed.Y, 0); err != nil {
			return fmt.Errorf("dxf rod %s: %w", c, err)
		}
	}

	return d.SaveAs(path)
}

// drawPolygonLayer puts one closed outline on its own layer as LINE
// entities.
func drawPolygonLayer(d *drawing.Drawing, layer string, poly geom.Polygon) error {
	if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("dxf layer %s: %w", layer, err)
	}
	for _, e := range poly.Edges() {
		if _, err := d.Line(e.A.X, e.A.Y, 0, e.B.X, e.B.Y, 0); err != nil {
			return fmt.Errorf("dxf outline %s: %w", layer, err)
		}
	}
	return nil
}
