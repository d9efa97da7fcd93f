package dataprocessing

import (
	"sort"

	"energyreport/pkg/contracts/domain"
)

// MergeSeries outer-joins the series of every group for one rollup on
// bucket start. Rows are sorted by start and cells follow groups; a group
// with no point at a bucket gets domain.NoData, never a zero.
func MergeSeries(key domain.SeriesKey, groups []string, series []domain.TimeBucketSeries) domain.MergedSeries {
	merged := domain.MergedSeries{
		Width:     key.Width,
		Statistic: key.Statistic,
		Groups:    append([]string(nil), groups...),
		Rows:      []domain.MergedRow{},
	}

	column := make(map[string]int, len(groups))
	for i, g := range groups {
		column[g] = i
	}

	rows := make(map[int64]*domain.MergedRow)
	for _, s := range series {
		if s.Key() != key {
			continue
		}
		col, ok := column[s.Group]
		if !ok {
			continue
		}
		for _, p := range s.Points {
			k := p.Start.UnixNano()
			row, ok := rows[k]
			if !ok {
				row = &domain.MergedRow{
					Start: p.Start,
					Cells: make([]domain.Cell, len(groups)),
				}
				rows[k] = row
			}
			row.Cells[col] = domain.Cell{Value: p.Value, Present: true}
		}
	}

	for _, row := range rows {
		merged.Rows = append(merged.Rows, *row)
	}
	sort.Slice(merged.Rows, func(i, j int) bool {
		return merged.Rows[i].Start.Before(merged.Rows[j].Start)
	})
	return merged
}
