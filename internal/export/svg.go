package export

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/engine"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
)

// SVG styles.
const (
	styleBox       = "fill:none;stroke:#222;stroke-width:0.4"
	styleLidClosed = "fill:none;stroke:#666;stroke-width:0.3"
	styleLidOpen   = "fill:none;stroke:#bbb;stroke-width:0.3"
	styleLidMotion = "fill:none;stroke:#9cf;stroke-width:0.2"
	styleLinkA     = "stroke:#c22;stroke-width:0.35"
	styleLinkB     = "stroke:#24c;stroke-width:0.35"
	stylePivot     = "fill:#c22;stroke:none"
	svgPadding     = 5.0
)

// ExportSVG writes a motion snapshot: box, closed and open lid, and the
// moving lid sampled at frames poses across the drive range with the
// linkage drawn at each. An invalid linkage renders whatever prefix of the
// sweep is reachable.
func ExportSVG(path string, snap Snapshot, frames int) error {
	if frames < 2 {
		return fmt.Errorf("need at least 2 frames, got %d", frames)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	// Canvas spans the union of box and open lid, y flipped to match
	// screen coordinates.
	minX, minY, maxX, maxY := snapBounds(snap)
	width := maxX - minX + 2*svgPadding
	height := maxY - minY + 2*svgPadding
	flip := func(p geom.Point) (float64, float64) {
		return p.X - minX + svgPadding, maxY - p.Y + svgPadding
	}

	canvas := svg.New(file)
	canvas.Start(width, height)

	drawPoly(canvas, snap.Geo.BoxVertices(), flip, styleBox)
	drawPoly(canvas, snap.Geo.ClosedLidVertices(), flip, styleLidClosed)
	drawPoly(canvas, snap.Geo.OpenLidVertices(), flip, styleLidOpen)

	if f, err := engine.NewFourBar(snap.Geo, snap.Layout); err == nil {
		r := f.ValidRange()
		for i := 0; i < frames; i++ {
			theta := r.Start + r.Sweep()*float64(i)/float64(frames-1)
			if !f.Step(theta) {
				break
			}
			drawPoly(canvas, f.MovingLidVertices(), flip, styleLidMotion)
			driver, follower, output := f.Links()
			drawSeg(canvas, driver, flip, styleLinkA)
			drawSeg(canvas, follower, flip, styleLinkA)
			drawSeg(canvas, output, flip, styleLinkB)
		}
	}

	for _, p := range []geom.Point{
		snap.Layout.A.Closed, snap.Layout.A.Box,
		snap.Layout.B.Closed, snap.Layout.B.Box,
	} {
		x, y := flip(p)
		canvas.Circle(x, y, 0.6, stylePivot)
	}

	canvas.End()
	return file.Close()
}

func snapBounds(snap Snapshot) (minX, minY, maxX, maxY float64) {
	first := true
	for _, poly := range []geom.Polygon{snap.Geo.BoxVertices(), snap.Geo.OpenLidVertices()} {
		for _, v := range poly {
			if first {
				minX, maxX = v.X, v.X
				minY, maxY = v.Y, v.Y
				first = false
				continue
			}
			minX = min(minX, v.X)
			maxX = max(maxX, v.X)
			minY = min(minY, v.Y)
			maxY = max(maxY, v.Y)
		}
	}
	return minX, minY, maxX, maxY
}

func drawPoly(canvas *svg.SVG, poly geom.Polygon, flip func(geom.Point) (float64, float64), style string) {
	xs := make([]float64, len(poly))
	ys := make([]float64, len(poly))
	for i, v := range poly {
		xs[i], ys[i] = flip(v)
	}
	canvas.Polygon(xs, ys, style)
}

func drawSeg(canvas *svg.SVG, s geom.Segment, flip func(geom.Point) (float64, float64), style string) {
	x1, y1 := flip(s.A)
	x2, y2 := flip(s.B)
	canvas.Line(x1, y1, x2, y2, style)
}
