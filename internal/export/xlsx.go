package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// ExportXLSX writes the hinge configuration as a one-sheet workbook:
// parameters, pivot coordinates per chain, rod lengths, drive range and
// the validity verdict.
func ExportXLSX(path string, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	var firstErr error
	set := func(cell string, value interface{}) {
		if err := f.SetCellValue(sheet, cell, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	p := snap.Geo.Params()
	set("A1", "Parameter")
	set("B1", "Value")
	set("A2", "Height h")
	set("B2", p.H)
	set("A3", "Width w")
	set("B3", p.W)
	set("A4", "Lid depth d")
	set("B4", p.D)
	set("A5", "Lid angle alpha (deg)")
	set("B5", p.Alpha)
	set("A6", "Open gap g")
	set("B6", p.G)

	center := snap.Geo.Center()
	set("A8", "Chain")
	set("B8", "Closed X")
	set("C8", "Closed Y")
	set("D8", "Open X")
	set("E8", "Open Y")
	set("F8", "Box X")
	set("G8", "Box Y")
	set("H8", "Rod length")

	row := 9
	for _, c := range []model.Chain{model.ChainA, model.ChainB} {
		cp := snap.Layout.Chain(c)
		open := cp.Open(center)
		set(fmt.Sprintf("A%d", row), c.String())
		set(fmt.Sprintf("B%d", row), cp.Closed.X)
		set(fmt.Sprintf("C%d", row), cp.Closed.Y)
		set(fmt.Sprintf("D%d", row), open.X)
		set(fmt.Sprintf("E%d", row), open.Y)
		set(fmt.Sprintf("F%d", row), cp.Box.X)
		set(fmt.Sprintf("G%d", row), cp.Box.Y)
		set(fmt.Sprintf("H%d", row), cp.RodLength())
		row++
	}

	set("A12", "Center of rotation X")
	set("B12", center.X)
	set("A13", "Center of rotation Y")
	set("B13", center.Y)
	set("A14", "Drive start (deg)")
	set("B14", snap.Range.Start*180/math.Pi)
	set("A15", "Drive end (deg)")
	set("B15", snap.Range.End*180/math.Pi)
	set("A16", "Valid")
	set("B16", snap.Valid)

	if firstErr != nil {
		return firstErr
	}
	return f.SaveAs(path)
}
