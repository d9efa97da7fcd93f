package dataprocessing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/internal/shared/testutil"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantHeader  []string
		wantRows    [][]string
		wantSkipped int
		wantErr     error
	}{
		{
			name:       "plain",
			content:    "Timestamp,Energy_kwh\n2024-01-01 00:00:00,10\n2024-01-01 01:00:00,20\n",
			wantHeader: []string{"Timestamp", "Energy_kwh"},
			wantRows:   [][]string{{"2024-01-01 00:00:00", "10"}, {"2024-01-01 01:00:00", "20"}},
		},
		{
			name:       "bom and padded header",
			content:    "\ufeff Timestamp , Energy_kwh\n2024-01-01,5\n",
			wantHeader: []string{"Timestamp", "Energy_kwh"},
			wantRows:   [][]string{{"2024-01-01", "5"}},
		},
		{
			name:        "long rows skipped and short rows padded",
			content:     "Timestamp,Energy_kwh,Meter\n2024-01-01,1,m1,extra\n2024-01-02,2\n",
			wantHeader:  []string{"Timestamp", "Energy_kwh", "Meter"},
			wantRows:    [][]string{{"2024-01-02", "2", ""}},
			wantSkipped: 1,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrEmptyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "input.csv", tt.content)

			table, err := ParseCSV(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, table.Header)
			assert.Equal(t, tt.wantRows, table.Rows)
			assert.Equal(t, tt.wantSkipped, table.Skipped)
		})
	}
}

func TestParseCSVMalformedQuote(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "bad.csv", "Timestamp,Energy_kwh\n\"2024-01-01,1\n")

	_, err := ParseCSV(path)
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteXLSX(t, dir, "building.xlsx",
		[]string{"Timestamp", "Energy_kwh", "Meter"},
		[]string{"2024-01-01 00:00:00", "10", "m1"},
		[]string{"2024-01-01 01:00:00", "20"},
	)

	table, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Timestamp", "Energy_kwh", "Meter"}, table.Header)
	assert.Equal(t, [][]string{
		{"2024-01-01 00:00:00", "10", "m1"},
		{"2024-01-01 01:00:00", "20", ""},
	}, table.Rows)
	assert.Equal(t, 1, table.ColumnIndex("Energy_kwh"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
}

func TestParseXLSXDateCells(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteXLSXValues(t, dir, "dated.xlsx",
		[]string{"Timestamp", "Energy_kwh", "Meter"},
		[]interface{}{time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), 12.5, "m1"},
		[]interface{}{time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC), 1234.125, 7},
	)

	table, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"2024-01-15 10:30:00", "12.5", "m1"},
		{"2024-01-15 23:59:59", "1234.125", "7"},
	}, table.Rows)
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd hh:mm", true},
		{"d/m/yy", true},
		{"0.00", false},
		{"[Red]0.00", false},
		{`0.00" kWh"`, false},
		{"#,##0", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = ParseFile(testutil.WriteFile(t, dir, "notes.txt", "x"))
	assert.Error(t, err)

	_, err = ParseFile(testutil.WriteFile(t, dir, "corrupt.xlsx", "not a zip"))
	assert.Error(t, err)
}
