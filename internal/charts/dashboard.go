package charts

import (
	"fmt"
	"sort"

	"energyreport/pkg/contracts/domain"
)

// Rollups the dashboard reads from the aggregates
var (
	dailySum   = domain.SeriesKey{Width: domain.BucketDaily, Statistic: domain.StatSum}
	weeklyMean = domain.SeriesKey{Width: domain.BucketWeekly, Statistic: domain.StatMean}
	hourlyMax  = domain.SeriesKey{Width: domain.BucketHourly, Statistic: domain.StatMax}
)

// Panel is a chart and the file name it is rendered to
type Panel struct {
	File  string
	Chart Chart
}

// Dashboard builds the three dashboard charts: the daily trend per group,
// the average weekly usage per group and the hourly peak load.
func Dashboard(agg *domain.Aggregates, unit string, files [3]string) []Panel {
	return []Panel{
		{File: files[0], Chart: DailyTrend(agg, unit)},
		{File: files[1], Chart: WeeklyAverage(agg, unit)},
		{File: files[2], Chart: HourlyPeak(agg, unit)},
	}
}

// DailyTrend is a line chart of the merged daily sums, one series per
// group. Buckets where a group has no data are left out of its line.
func DailyTrend(agg *domain.Aggregates, unit string) Chart {
	chart := Chart{
		Kind:   KindLine,
		Title:  "Daily Consumption Trend",
		XLabel: "Date",
		YLabel: axisLabel("Consumption", unit),
	}

	merged, ok := agg.MergedFor(dailySum)
	if !ok {
		return chart
	}

	for col, group := range merged.Groups {
		series := Series{Name: group}
		for _, row := range merged.Rows {
			if cell := row.Cells[col]; cell.Present {
				series.Points = append(series.Points, Point{Time: row.Start, Value: cell.Value})
			}
		}
		chart.Series = append(chart.Series, series)
	}
	return chart
}

// WeeklyAverage is a bar chart of each group's mean weekly usage, largest first
func WeeklyAverage(agg *domain.Aggregates, unit string) Chart {
	chart := Chart{
		Kind:   KindBar,
		Title:  "Average Weekly Usage",
		XLabel: "Group",
		YLabel: axisLabel("Average", unit),
	}

	for _, s := range agg.SeriesFor(weeklyMean) {
		if len(s.Points) == 0 {
			continue
		}
		var sum float64
		for _, p := range s.Points {
			sum += p.Value
		}
		chart.Bars = append(chart.Bars, Bar{Label: s.Group, Value: sum / float64(len(s.Points))})
	}

	sort.SliceStable(chart.Bars, func(i, j int) bool {
		return chart.Bars[i].Value > chart.Bars[j].Value
	})
	return chart
}

// HourlyPeak is a scatter of the highest group value in every hourly bucket
func HourlyPeak(agg *domain.Aggregates, unit string) Chart {
	chart := Chart{
		Kind:   KindScatter,
		Title:  "Hourly Peak Load",
		XLabel: "Time",
		YLabel: axisLabel("Peak", unit),
	}

	merged, ok := agg.MergedFor(hourlyMax)
	if !ok {
		return chart
	}

	series := Series{Name: "peak"}
	for _, row := range merged.Rows {
		var (
			peak  float64
			found bool
		)
		for _, cell := range row.Cells {
			if cell.Present && (!found || cell.Value > peak) {
				peak = cell.Value
				found = true
			}
		}
		if found {
			series.Points = append(series.Points, Point{Time: row.Start, Value: peak})
		}
	}
	chart.Series = []Series{series}
	return chart
}

func axisLabel(name, unit string) string {
	if unit == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, unit)
}
