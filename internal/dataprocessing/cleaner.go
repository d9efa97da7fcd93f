package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"energyreport/internal/config"
	apperrors "energyreport/internal/errors"
	"energyreport/pkg/contracts/domain"
)

// Grouping modes for the cleaner
const (
	GroupBySource = "source"
	GroupBySeason = "season"
)

// CleanStats counts what the cleaner kept and dropped
type CleanStats struct {
	Input   int
	Kept    int
	Dropped int
}

// Cleaner coerces raw records to typed ones and sorts them by time
type Cleaner struct {
	layouts  []string
	location *time.Location
	groupBy  string
	logger   *slog.Logger
}

// NewCleaner creates a cleaner from the input and aggregation configuration
func NewCleaner(cfg *config.Config, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		layouts:  cfg.Input.TimestampLayouts,
		location: cfg.Location(),
		groupBy:  cfg.Aggregation.GroupBy,
		logger:   logger,
	}
}

// Clean returns a new table holding the records whose group key, timestamp
// and value are all usable, stably sorted by timestamp. Rejected records are
// dropped without a processing log entry.
func (c *Cleaner) Clean(ctx context.Context, table domain.UnifiedTable) (domain.CleanTable, CleanStats) {
	stats := CleanStats{Input: table.Len()}
	out := domain.CleanTable{
		Records: make([]domain.Record, 0, table.Len()),
		Columns: append([]string(nil), table.Columns...),
	}

	reasons := make(map[string]int)
	for _, raw := range table.Records {
		rec, err := c.cleanRecord(raw)
		if err != nil {
			reasons[err.Message]++
			continue
		}
		out.Records = append(out.Records, rec)
	}

	sort.SliceStable(out.Records, func(i, j int) bool {
		return out.Records[i].Timestamp.Before(out.Records[j].Timestamp)
	})

	stats.Kept = out.Len()
	stats.Dropped = stats.Input - stats.Kept

	attrs := []any{
		slog.Int("input", stats.Input),
		slog.Int("kept", stats.Kept),
		slog.Int("dropped", stats.Dropped),
	}
	keys := make([]string, 0, len(reasons))
	for reason := range reasons {
		keys = append(keys, reason)
	}
	sort.Strings(keys)
	for _, reason := range keys {
		attrs = append(attrs, slog.Int(strings.ReplaceAll(reason, " ", "_"), reasons[reason]))
	}
	c.logger.InfoContext(ctx, "records cleaned", attrs...)

	return out, stats
}

func (c *Cleaner) cleanRecord(raw domain.RawRecord) (domain.Record, *apperrors.AppError) {
	group := strings.TrimSpace(raw.Group)
	if group == "" {
		return domain.Record{}, apperrors.NewDataQualityError("missing group", nil)
	}

	ts, err := ParseTimestamp(raw.Timestamp, c.layouts, c.location)
	if err != nil {
		return domain.Record{}, apperrors.NewDataQualityError("bad timestamp", err)
	}

	value, err := ParseValue(raw.Value)
	if err != nil {
		return domain.Record{}, apperrors.NewDataQualityError("bad value", err)
	}

	if c.groupBy == GroupBySeason {
		group = SeasonOf(ts)
	}

	return domain.Record{
		Source:    raw.Source,
		Group:     group,
		Timestamp: ts,
		Value:     value,
		Fields:    raw.Fields,
	}, nil
}

// ParseTimestamp tries each layout in order. Layouts without a zone are read
// in loc; the result is always expressed in loc.
func ParseTimestamp(s string, layouts []string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q matches no layout", s)
}

// ParseValue converts a cell to a finite float. Surrounding spaces and
// thousands separators are ignored.
func ParseValue(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q is not finite", s)
	}
	return v, nil
}
