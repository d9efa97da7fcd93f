package exporter

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"energyreport/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SummarySheet    = "Summary"
	DailyTrendSheet = "DailyTrend"
)

// BuildWorkbook renders the summary table and the merged daily sums as an
// xlsx document. Buckets where a group has no data are left blank.
func BuildWorkbook(summaries []domain.GroupSummary, daily domain.MergedSeries, groupLabel string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(DailyTrendSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", DailyTrendSheet, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummarySheet(f, summaries, groupLabel, bold); err != nil {
		return nil, err
	}
	if err := writeDailyTrendSheet(f, daily, bold); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, summaries []domain.GroupSummary, groupLabel string, headerStyle int) error {
	headers := summaryHeaders(groupLabel)
	if err := writeHeader(f, SummarySheet, headers, headerStyle); err != nil {
		return err
	}

	for i, s := range summaries {
		row := []interface{}{
			s.Group,
			s.Count,
			round2(s.Total),
			round2(s.Mean),
			round2(s.Min),
			round2(s.Max),
			s.PeakTimeString(peakTimeLayout),
		}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDailyTrendSheet(f *excelize.File, daily domain.MergedSeries, headerStyle int) error {
	headers := append([]string{"Date"}, daily.Groups...)
	if err := writeHeader(f, DailyTrendSheet, headers, headerStyle); err != nil {
		return err
	}

	for i, r := range daily.Rows {
		if err := setRow(f, DailyTrendSheet, i+2, []interface{}{r.Start.Format(bucketLayout)}); err != nil {
			return err
		}
		for j, c := range r.Cells {
			if !c.Present {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellFloat(DailyTrendSheet, cell, c.Value, -1, 64); err != nil {
				return fmt.Errorf("set %s!%s: %w", DailyTrendSheet, cell, err)
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := setRow(f, sheet, 1, values); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set %s row %d: %w", sheet, row, err)
	}
	return nil
}

// round2 keeps workbook numbers consistent with the CSV summary
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
