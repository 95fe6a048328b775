package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Mark,Length,Qty\nA1,5.8,3\nB1,2.4,10\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Mark;Length;Qty\nA1;5.8;3\nB1;2.4;10\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Mark\tLength\tQty\nA1\t5.8\t3\nB1\t2.4\t10\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Mark|Length|Qty\nA1|5.8|3\nB1|2.4|10\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Length", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Length != 1 {
		t.Errorf("expected Length at 1, got %d", mapping.Length)
	}
	if mapping.Quantity != 2 {
		t.Errorf("expected Quantity at 2, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"MARK", "LENGTH", "QTY"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Length != 1 {
		t.Errorf("expected Length at 1, got %d", mapping.Length)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Bar Mark", "Cut Length", "No Off"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Length != 1 {
		t.Errorf("expected Length at 1, got %d", mapping.Length)
	}
	if mapping.Quantity != 2 {
		t.Errorf("expected Quantity at 2, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Qty", "Length", "Mark"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 {
		t.Errorf("expected Quantity at 0, got %d", mapping.Quantity)
	}
	if mapping.Length != 1 {
		t.Errorf("expected Length at 1, got %d", mapping.Length)
	}
	if mapping.Label != 2 {
		t.Errorf("expected Label at 2, got %d", mapping.Label)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"A1", "5.8", "3"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header to be detected")
	}
	if mapping.Label != 0 || mapping.Length != 1 || mapping.Quantity != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSV_WithHeaders(t *testing.T) {
	csv := "Mark,Length,Qty\nA1,5.8,3\nB1,2.4,10\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}

	if result.Requirements[0].Label != "A1" {
		t.Errorf("expected 'A1', got %q", result.Requirements[0].Label)
	}
	if result.Requirements[0].Length != 5.8 {
		t.Errorf("expected length 5.8, got %f", result.Requirements[0].Length)
	}
	if result.Requirements[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", result.Requirements[0].Quantity)
	}
}

func TestImportCSV_WithoutHeaders(t *testing.T) {
	csv := "A1,5.8,3\nB1,2.4,10\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
}

func TestImportCSV_MillimetreLengthsConverted(t *testing.T) {
	csv := "Mark,Length,Qty\nA1,5800,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(result.Requirements))
	}
	if result.Requirements[0].Length != 5.8 {
		t.Errorf("expected length converted to 5.8m, got %f", result.Requirements[0].Length)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "millimetres") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a conversion warning, got %v", result.Warnings)
	}
}

func TestImportCSV_MetreSuffixAccepted(t *testing.T) {
	csv := "Mark,Length,Qty\nA1,5.8m,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 1 || result.Requirements[0].Length != 5.8 {
		t.Fatalf("expected one 5.8m requirement, got %+v", result.Requirements)
	}
}

func TestImportCSV_MissingLabelGetsDefault(t *testing.T) {
	csv := "Mark,Length,Qty\n,5.8,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(result.Requirements))
	}
	if result.Requirements[0].Label != "Cut 1" {
		t.Errorf("expected default label 'Cut 1', got %q", result.Requirements[0].Label)
	}
}

func TestImportCSV_InvalidRowsCollected(t *testing.T) {
	csv := "Mark,Length,Qty\nA1,5.8,3\nB1,abc,2\nC1,2.4,xyz\nD1,-1,2\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 valid requirement, got %d", len(result.Requirements))
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSV_SkipsEmptyRows(t *testing.T) {
	csv := "Mark,Length,Qty\nA1,5.8,3\n,,\n\nB1,2.4,10\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	csv := "Mark,Length\nA1,5.8\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for missing quantity column")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuts.csv")
	data := "Mark;Length;Qty\nA1;5.8;3\nB1;2.4;10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cuts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Mark", "Length", "Qty"},
		{"A1", 5.8, 3},
		{"B1", 2.4, 10},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(result.Requirements))
	}

	if result.Requirements[0].Label != "A1" {
		t.Errorf("expected 'A1', got %q", result.Requirements[0].Label)
	}
	if result.Requirements[0].Length != 5.8 {
		t.Errorf("expected length 5.8, got %f", result.Requirements[0].Length)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── Dispatch Tests ────────────────────────────────────────

func TestImportFile_DispatchesByExtension(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Mark", "Length", "Qty"},
		{"A1", 5.8, 3},
	})

	result := ImportFile(path)
	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 requirement from xlsx, got %d", len(result.Requirements))
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cuts.csv")
	if err := os.WriteFile(csvPath, []byte("Mark,Length,Qty\nA1,5.8,3\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	result = ImportFile(csvPath)
	if len(result.Requirements) != 1 {
		t.Fatalf("expected 1 requirement from csv, got %d", len(result.Requirements))
	}
}
