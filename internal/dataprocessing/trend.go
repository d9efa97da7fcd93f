package dataprocessing

import (
	"energyreport/pkg/contracts/domain"
)

// GlobalPeak returns the first record, in table order, holding the maximum
// value. ok is false for an empty table.
func GlobalPeak(table domain.CleanTable) (peak domain.Record, ok bool) {
	for i, r := range table.Records {
		if i == 0 || r.Value > peak.Value {
			peak = r
		}
	}
	return peak, table.Len() > 0
}

// HighestTotal returns the summary with the largest total; ties go to the
// first in slice order
func HighestTotal(summaries []domain.GroupSummary) (top domain.GroupSummary, ok bool) {
	for i, s := range summaries {
		if i == 0 || s.Total > top.Total {
			top = s
		}
	}
	return top, len(summaries) > 0
}

// GrandTotal sums the totals of all groups
func GrandTotal(summaries []domain.GroupSummary) float64 {
	var total float64
	for _, s := range summaries {
		total += s.Total
	}
	return total
}

// AverageGrowthRate is the mean period-over-period percent change of the
// merged per-bucket totals. A change from a zero total is undefined and
// left out; with no defined change the rate is 0.
func AverageGrowthRate(merged domain.MergedSeries) float64 {
	if len(merged.Rows) < 2 {
		return 0
	}

	var (
		sum float64
		n   int
	)
	prev := merged.Rows[0].Total()
	for _, row := range merged.Rows[1:] {
		cur := row.Total()
		if prev != 0 {
			sum += (cur - prev) / prev
			n++
		}
		prev = cur
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n) * 100
}
