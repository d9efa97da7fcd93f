package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteFile writes raw content to dir/name and returns the path
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteCSV writes header and rows as a CSV file in dir and returns the path
func WriteCSV(t testing.TB, dir, name string, header []string, rows ...[]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write fixture rows: %v", err)
	}
	return path
}

// WriteXLSX writes header and rows to the first sheet of a new workbook in
// dir and returns the path. Cells are stored as text.
func WriteXLSX(t testing.TB, dir, name string, header []string, rows ...[]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture %s: %v", path, err)
	}
	return path
}

// EnergyHeader is the default input header used across tests
var EnergyHeader = []string{"Timestamp", "Energy_kwh"}

// WriteXLSXValues is WriteXLSX with typed cells: time.Time values become
// date cells and numbers stay numeric
func WriteXLSXValues(t testing.TB, dir, name string, header []string, rows ...[]interface{}) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := make([][]interface{}, 0, len(rows)+1)
	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	all = append(all, head)
	all = append(all, rows...)

	for i, row := range all {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture %s: %v", path, err)
	}
	return path
}
