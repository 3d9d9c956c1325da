package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	qrSize       = 24.0
	crossSize    = 3.0
)

// plotter maps box-local coordinates (y up) onto the PDF page (y down).
type plotter struct {
	pdf     *fpdf.Fpdf
	scale   float64
	offsetX float64
	offsetY float64
	maxY    float64
}

func (pl plotter) xy(p geom.Point) (float64, float64) {
	return pl.offsetX + p.X*pl.scale, pl.offsetY + (pl.maxY-p.Y)*pl.scale
}

func (pl plotter) polygon(poly geom.Polygon) {
	for _, e := range poly.Edges() {
		x1, y1 := pl.xy(e.A)
		x2, y2 := pl.xy(e.B)
		pl.pdf.Line(x1, y1, x2, y2)
	}
}

func (pl plotter) crosshair(p geom.Point) {
	x, y := pl.xy(p)
	pl.pdf.Line(x-crossSize, y, x+crossSize, y)
	pl.pdf.Line(x, y-crossSize, x, y+crossSize)
	pl.pdf.Circle(x, y, crossSize*0.6, "D")
}

// ExportPDF writes a drilling template for the hinge: a scaled overview of
// box, closed and open lid with both chains' pivots, a coordinate table,
// and a QR code pointing at the share URL. shareURL may be empty to omit
// the QR code.
func ExportPDF(path string, snap Snapshot, shareURL string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	p := snap.Geo.Params()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Hinge template: %g x %g box, lid %g @ %g deg", p.W, p.H, p.D, p.Alpha)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	verdict := "valid: lid swings from closed to open"
	if !snap.Valid {
		verdict = "INVALID: this hinge will not allow the lid to open and close"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, verdict, "", 0, "L", false, 0, "")

	pl := overviewPlotter(pdf, snap)

	// Box and lid outlines
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.4)
	pl.polygon(snap.Geo.BoxVertices())
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.25)
	pl.polygon(snap.Geo.ClosedLidVertices())
	pdf.SetDrawColor(180, 180, 180)
	pl.polygon(snap.Geo.OpenLidVertices())

	// Pivots, one color per chain (the conventional red/blue pair)
	center := snap.Geo.Center()
	for _, c := range []model.Chain{model.ChainA, model.ChainB} {
		cp := snap.Layout.Chain(c)
		if c == model.ChainA {
			pdf.SetDrawColor(200, 40, 40)
		} else {
			pdf.SetDrawColor(40, 80, 200)
		}
		pdf.SetLineWidth(0.35)
		pl.crosshair(cp.Closed)
		pl.crosshair(cp.Box)
		pl.crosshair(cp.Open(center))

		x1, y1 := pl.xy(cp.Box)
		x2, y2 := pl.xy(cp.Closed)
		pdf.SetLineWidth(0.2)
		pdf.Line(x1, y1, x2, y2)
	}

	renderCoordinateTable(pdf, snap)

	if shareURL != "" {
		if err := renderQR(pdf, shareURL); err != nil {
			return err
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by hingegen - up-and-over hinge generator", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// overviewPlotter fits the full closed+open extent into the drawing area.
func overviewPlotter(pdf *fpdf.Fpdf, snap Snapshot) plotter {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range []geom.Polygon{snap.Geo.BoxVertices(), snap.Geo.OpenLidVertices()} {
		for _, v := range poly {
			minX = math.Min(minX, v.X)
			minY = math.Min(minY, v.Y)
			maxX = math.Max(maxX, v.X)
			maxY = math.Max(maxY, v.Y)
		}
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight*0.5 - drawAreaTop
	scale := math.Min(drawWidth/(maxX-minX), drawHeight/(maxY-minY))

	return plotter{
		pdf:     pdf,
		scale:   scale,
		offsetX: marginLeft + (drawWidth-(maxX-minX)*scale)/2 - minX*scale,
		offsetY: drawAreaTop,
		maxY:    maxY,
	}
}

// renderCoordinateTable lists the pivot coordinates and rod lengths in the
// lower half of the page.
func renderCoordinateTable(pdf *fpdf.Fpdf, snap Snapshot) {
	y := pageHeight*0.5 + 12
	center := snap.Geo.Center()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pivot coordinates (box-local units)", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 35, 35, 35, 30}
	headers := []string{"Chain", "Lid (closed)", "Lid (open)", "Box", "Rod length"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range []model.Chain{model.ChainA, model.ChainB} {
		cp := snap.Layout.Chain(c)
		row := []string{
			c.String(),
			fmtPoint(cp.Closed),
			fmtPoint(cp.Open(center)),
			fmtPoint(cp.Box),
			fmt.Sprintf("%.2f", cp.RodLength()),
		}
		x = marginLeft
		for i, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, "C", false, 0, "")
			x += colWidths[i]
		}
		y += 6
	}

	y += 6
	pdf.SetXY(marginLeft, y)
	rangeText := fmt.Sprintf("Center of rotation: %s    Drive range: %.1f to %.1f deg (clockwise)",
		fmtPoint(center), snap.Range.Start*180/math.Pi, snap.Range.End*180/math.Pi)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, rangeText, "", 0, "L", false, 0, "")
}

// renderQR places a QR code of the share URL in the bottom-right corner.
func renderQR(pdf *fpdf.Fpdf, shareURL string) error {
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("share_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))

	x := pageWidth - marginRight - qrSize
	y := pageHeight - marginBottom - qrSize - 6
	pdf.ImageOptions("share_qr", x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(x, y+qrSize)
	pdf.CellFormat(qrSize, 3, "scan to edit", "", 0, "C", false, 0, "")
	return nil
}

func fmtPoint(p geom.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
