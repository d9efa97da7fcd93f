package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyFile is returned by the table readers when a file has no header row
var ErrEmptyFile = errors.New("file is empty")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is the raw content of one input file: a trimmed header and the
// data rows. Rows are never longer than the header.
type Table struct {
	Header []string
	Rows   [][]string
	// Skipped counts rows dropped because they had more fields than the header
	Skipped int
}

// ColumnIndex returns the position of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ParseFile reads a CSV or XLSX file into a Table, choosing the reader by
// extension
func ParseFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(path)
	case ".xlsx":
		return ParseXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// ParseCSV reads a comma separated file. A leading UTF-8 BOM is ignored and
// rows with more fields than the header are skipped.
func ParseCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &Table{Header: trimAll(header)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		table.add(row)
	}

	return table, nil
}

// ParseXLSX reads the first sheet of a workbook; its first row is the header
func ParseXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyFile
	}

	dates := newDateCells(f, sheet)
	table := &Table{Header: trimAll(rows[0])}
	for r, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		for c, v := range row {
			if ts, ok := dates.convert(c+1, r+2, v); ok {
				row[c] = ts
			}
		}
		table.add(row)
	}

	return table, nil
}

// XLSXTimeLayout is how date cells are rendered into the raw table; it is
// the first of the default timestamp layouts
const XLSXTimeLayout = "2006-01-02 15:04:05"

// dateCells converts numeric cells carrying a date number format into
// XLSXTimeLayout strings
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) convert(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	idx, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || !d.isDateStyle(idx) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Round(time.Second).Format(XLSXTimeLayout), true
}

func (d *dateCells) isDateStyle(idx int) bool {
	if idx == 0 {
		return false
	}
	if known, ok := d.styles[idx]; ok {
		return known
	}
	isDate := false
	if style, err := d.f.GetStyle(idx); err == nil {
		isDate = isDateNumFmt(style.NumFmt) ||
			(style.CustomNumFmt != nil && isDateFormatCode(*style.CustomNumFmt))
	}
	d.styles[idx] = isDate
	return isDate
}

// isDateNumFmt reports whether a built-in number format id renders a date or time
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47) || (id >= 27 && id <= 36) || (id >= 50 && id <= 58)
}

// isDateFormatCode looks for date tokens outside quoted text and brackets
func isDateFormatCode(code string) bool {
	var b strings.Builder
	depth, quoted := 0, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(b.String(), "ydh")
}

// add appends a data row, padding short rows and skipping long ones
func (t *Table) add(row []string) {
	if len(row) > len(t.Header) {
		t.Skipped++
		return
	}
	if len(row) < len(t.Header) {
		padded := make([]string, len(t.Header))
		copy(padded, row)
		row = padded
	}
	t.Rows = append(t.Rows, row)
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
