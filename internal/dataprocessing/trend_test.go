package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/pkg/contracts/domain"
)

func mergedTotals(totals ...float64) domain.MergedSeries {
	m := domain.MergedSeries{Groups: []string{"a"}}
	for i, v := range totals {
		m.Rows = append(m.Rows, domain.MergedRow{
			Start: at(i+1, 0),
			Cells: []domain.Cell{{Value: v, Present: true}},
		})
	}
	return m
}

func TestAverageGrowthRate(t *testing.T) {
	tests := []struct {
		name   string
		merged domain.MergedSeries
		want   float64
	}{
		{name: "no buckets", merged: domain.MergedSeries{}, want: 0},
		{name: "one bucket", merged: mergedTotals(10), want: 0},
		{name: "doubling then flat", merged: mergedTotals(10, 20, 20), want: 50},
		{name: "decline", merged: mergedTotals(100, 50), want: -50},
		{name: "zero previous skipped", merged: mergedTotals(0, 10, 20), want: 100},
		{name: "only zeros", merged: mergedTotals(0, 0), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageGrowthRate(tt.merged), 1e-9)
		})
	}
}

func TestAverageGrowthRateUsesPresentCells(t *testing.T) {
	m := domain.MergedSeries{
		Groups: []string{"a", "b"},
		Rows: []domain.MergedRow{
			{Start: at(1, 0), Cells: []domain.Cell{{Value: 10, Present: true}, {Value: 10, Present: true}}},
			{Start: at(2, 0), Cells: []domain.Cell{{Value: 30, Present: true}, domain.NoData}},
		},
	}

	assert.InDelta(t, 50.0, AverageGrowthRate(m), 1e-9)
}

func TestGlobalPeak(t *testing.T) {
	_, ok := GlobalPeak(domain.CleanTable{})
	assert.False(t, ok)

	table := domain.CleanTable{Records: []domain.Record{
		rec("a", at(1, 0), -5),
		rec("b", at(1, 1), 8),
		rec("a", at(1, 2), 8),
	}}
	peak, ok := GlobalPeak(table)
	require.True(t, ok)
	assert.Equal(t, "b", peak.Group)
	assert.Equal(t, 8.0, peak.Value)
}

func TestHighestTotalAndGrandTotal(t *testing.T) {
	_, ok := HighestTotal(nil)
	assert.False(t, ok)

	summaries := []domain.GroupSummary{
		{Group: "a", Total: 10},
		{Group: "b", Total: 30},
		{Group: "c", Total: 30},
	}

	top, ok := HighestTotal(summaries)
	require.True(t, ok)
	assert.Equal(t, "b", top.Group)
	assert.Equal(t, 70.0, GrandTotal(summaries))
}
