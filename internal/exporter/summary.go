package exporter

import (
	"energyreport/pkg/contracts/domain"
)

// SummaryTable converts group summaries to CSV rows. The file carries a BOM
// so spreadsheet tools read group names correctly.
func SummaryTable(summaries []domain.GroupSummary, groupLabel string) WriteOptions {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, summaryRow(s))
	}

	return WriteOptions{
		Headers:   summaryHeaders(groupLabel),
		Records:   records,
		BOMPrefix: true,
	}
}

func summaryHeaders(groupLabel string) []string {
	return []string{groupLabel, "Records", "Total", "Mean", "Min", "Max", "PeakTime"}
}

func summaryRow(s domain.GroupSummary) []string {
	return []string{
		s.Group,
		formatInt(s.Count),
		formatFloat(s.Total),
		formatFloat(s.Mean),
		formatFloat(s.Min),
		formatFloat(s.Max),
		s.PeakTimeString(peakTimeLayout),
	}
}
