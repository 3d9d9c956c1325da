package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/engine"
	"github.com/hugogrimmett/hinge-generator-sub000/internal/model"
)

// buildTestSnapshot captures a default hinge configuration for rendering.
func buildTestSnapshot(t *testing.T) Snapshot {
	t.Helper()
	geo, err := model.NewGeometry(model.DefaultParams())
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	return BuildSnapshot(engine.NewEditor(geo, geo.DefaultLayout()))
}

func assertFileNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file at %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("output file %s is empty", path)
	}
}

func TestBuildSnapshotCarriesRange(t *testing.T) {
	snap := buildTestSnapshot(t)
	if snap.Geo == nil {
		t.Fatal("snapshot missing geometry")
	}
	if snap.Range.Start == 0 && snap.Range.End == 0 {
		t.Error("expected a non-zero drive range for a well-formed layout")
	}
	if snap.Range.End > snap.Range.Start {
		t.Error("drive range should be clockwise")
	}
}

func TestExportPDF(t *testing.T) {
	snap := buildTestSnapshot(t)
	path := filepath.Join(t.TempDir(), "template.pdf")

	if err := ExportPDF(path, snap, "https://example.test/?h=30"); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	assertFileNonEmpty(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output does not start with a PDF header")
	}
}

func TestExportDXF(t *testing.T) {
	snap := buildTestSnapshot(t)
	path := filepath.Join(t.TempDir(), "hinge.dxf")

	if err := ExportDXF(path, snap); err != nil {
		t.Fatalf("ExportDXF failed: %v", err)
	}
	assertFileNonEmpty(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, layer := range []string{"BOX", "LID_CLOSED", "LID_OPEN", "PIVOTS_A", "PIVOTS_B"} {
		if !strings.Contains(string(data), layer) {
			t.Errorf("DXF output missing layer %s", layer)
		}
	}
}

func TestExportSVG(t *testing.T) {
	snap := buildTestSnapshot(t)
	path := filepath.Join(t.TempDir(), "motion.svg")

	if err := ExportSVG(path, snap, 5); err != nil {
		t.Fatalf("ExportSVG failed: %v", err)
	}
	assertFileNonEmpty(t, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not an SVG document")
	}
}

func TestExportSVGRejectsTooFewFrames(t *testing.T) {
	snap := buildTestSnapshot(t)
	path := filepath.Join(t.TempDir(), "motion.svg")
	if err := ExportSVG(path, snap, 1); err == nil {
		t.Error("expected error for fewer than 2 frames")
	}
}

func TestExportXLSX(t *testing.T) {
	snap := buildTestSnapshot(t)
	path := filepath.Join(t.TempDir(), "hinge.xlsx")

	if err := ExportXLSX(path, snap); err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	assertFileNonEmpty(t, path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Height h" {
		t.Errorf("expected height row label, got %q", got)
	}
	chain, err := f.GetCellValue("Sheet1", "A9")
	if err != nil {
		t.Fatal(err)
	}
	if chain != "A" {
		t.Errorf("expected chain A row, got %q", chain)
	}
}
