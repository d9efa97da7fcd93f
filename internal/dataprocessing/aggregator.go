package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"energyreport/internal/config"
	"energyreport/pkg/contracts/domain"
)

// Rollups the report always needs, on top of the configured ones
var (
	DailySum   = domain.SeriesKey{Width: domain.BucketDaily, Statistic: domain.StatSum}
	WeeklyMean = domain.SeriesKey{Width: domain.BucketWeekly, Statistic: domain.StatMean}
	HourlyMax  = domain.SeriesKey{Width: domain.BucketHourly, Statistic: domain.StatMax}
)

// SeriesKeys returns the cross product of the configured widths and
// statistics followed by extra, without duplicates and in that order
func SeriesKeys(cfg config.AggregationConfig, extra ...domain.SeriesKey) ([]domain.SeriesKey, error) {
	var keys []domain.SeriesKey
	seen := make(map[domain.SeriesKey]bool)
	add := func(k domain.SeriesKey) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, w := range cfg.BucketWidths {
		width, err := domain.ParseBucketWidth(w)
		if err != nil {
			return nil, fmt.Errorf("aggregation bucket widths: %w", err)
		}
		for _, st := range cfg.Statistics {
			stat, err := domain.ParseStatistic(st)
			if err != nil {
				return nil, fmt.Errorf("aggregation statistics: %w", err)
			}
			add(domain.SeriesKey{Width: width, Statistic: stat})
		}
	}
	for _, k := range extra {
		add(k)
	}
	return keys, nil
}

// Aggregator computes group summaries, bucketed series and their merged
// cross-group tables
type Aggregator struct {
	keys       []domain.SeriesKey
	summarizer *Summarizer
	logger     *slog.Logger
}

// NewAggregator creates an aggregator producing the given rollups
func NewAggregator(keys []domain.SeriesKey, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		keys:       keys,
		summarizer: NewSummarizer(logger),
		logger:     logger,
	}
}

// Aggregate partitions the table by group and computes every rollup. An
// empty table yields empty collections, not an error.
func (a *Aggregator) Aggregate(ctx context.Context, table domain.CleanTable) *domain.Aggregates {
	agg := &domain.Aggregates{
		Summaries: []domain.GroupSummary{},
		Series:    []domain.TimeBucketSeries{},
		Merged:    make(map[domain.SeriesKey]domain.MergedSeries),
	}
	if table.IsEmpty() {
		a.logger.WarnContext(ctx, "nothing to aggregate")
		return agg
	}

	groups, byGroup := partition(table)
	agg.Summaries = a.summarizer.GenerateFromTable(ctx, table)

	for _, key := range a.keys {
		start := len(agg.Series)
		for _, g := range groups {
			agg.Series = append(agg.Series, BuildSeries(g, byGroup[g], key))
		}
		agg.Merged[key] = MergeSeries(key, groups, agg.Series[start:])

		a.logger.DebugContext(ctx, "rollup computed",
			slog.String("series", key.String()),
			slog.Int("buckets", len(agg.Merged[key].Rows)))
	}

	a.logger.InfoContext(ctx, "aggregation complete",
		slog.Int("groups", len(groups)),
		slog.Int("series", len(agg.Series)))
	return agg
}
