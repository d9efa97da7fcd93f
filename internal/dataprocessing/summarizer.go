package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"energyreport/pkg/contracts/domain"
)

// Summarizer computes per-group statistics over cleaned records
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// GenerateFromTable returns one GroupSummary per group, sorted by group key
func (s *Summarizer) GenerateFromTable(ctx context.Context, table domain.CleanTable) []domain.GroupSummary {
	groups, byGroup := partition(table)

	summaries := make([]domain.GroupSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, Summarize(g, byGroup[g]))
	}

	s.logger.DebugContext(ctx, "generated group summaries",
		slog.Int("group_count", len(summaries)))
	return summaries
}

// Summarize computes sum, mean, min, max and the peak time of records. The
// peak is the first record, in slice order, that attains the max; records
// sorted by time therefore break ties by the earliest timestamp.
func Summarize(group string, records []domain.Record) domain.GroupSummary {
	summary := domain.GroupSummary{Group: group}
	if len(records) == 0 {
		return summary
	}

	for i, r := range records {
		if i == 0 {
			summary.Min = r.Value
			summary.Max = r.Value
			summary.PeakTime = r.Timestamp
		}
		if r.Value < summary.Min {
			summary.Min = r.Value
		}
		if r.Value > summary.Max {
			summary.Max = r.Value
			summary.PeakTime = r.Timestamp
		}
		summary.Total += r.Value
	}

	summary.Count = len(records)
	summary.Mean = summary.Total / float64(summary.Count)
	summary.HasPeak = true
	return summary
}

// partition splits a table by group key, keeping record order within each
// group, and returns the sorted group keys
func partition(table domain.CleanTable) ([]string, map[string][]domain.Record) {
	byGroup := make(map[string][]domain.Record)
	for _, r := range table.Records {
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}

	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups, byGroup
}
