package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// BucketWidth is the width of a time bucket used for rollups
type BucketWidth string

const (
	BucketHourly  BucketWidth = "hourly"
	BucketDaily   BucketWidth = "daily"
	BucketWeekly  BucketWidth = "weekly"
	BucketMonthly BucketWidth = "monthly"
)

// ParseBucketWidth converts a config string to a BucketWidth
func ParseBucketWidth(s string) (BucketWidth, error) {
	switch w := BucketWidth(strings.ToLower(strings.TrimSpace(s))); w {
	case BucketHourly, BucketDaily, BucketWeekly, BucketMonthly:
		return w, nil
	default:
		return "", fmt.Errorf("unknown bucket width %q", s)
	}
}

// Statistic is the reduction applied to the records of one bucket
type Statistic string

const (
	StatSum  Statistic = "sum"
	StatMean Statistic = "mean"
	StatMax  Statistic = "max"
)

// ParseStatistic converts a config string to a Statistic
func ParseStatistic(s string) (Statistic, error) {
	switch st := Statistic(strings.ToLower(strings.TrimSpace(s))); st {
	case StatSum, StatMean, StatMax:
		return st, nil
	default:
		return "", fmt.Errorf("unknown statistic %q", s)
	}
}

// ZeroFill reports whether empty buckets are carried as zero for this
// statistic. Sums zero-fill; means and maxima omit empty buckets.
func (s Statistic) ZeroFill() bool {
	return s == StatSum
}

// SeriesKey identifies one (width, statistic) rollup
type SeriesKey struct {
	Width     BucketWidth `json:"width"`
	Statistic Statistic   `json:"statistic"`
}

func (k SeriesKey) String() string {
	return string(k.Width) + "/" + string(k.Statistic)
}

// BucketPoint is one reduced bucket. Count is the number of records that
// fell into the bucket (zero for a zero-filled gap).
type BucketPoint struct {
	Start time.Time `json:"start"`
	Value float64   `json:"value"`
	Count int       `json:"count"`
}

// TimeBucketSeries is the ordered rollup of one group
type TimeBucketSeries struct {
	Group     string        `json:"group"`
	Width     BucketWidth   `json:"width"`
	Statistic Statistic     `json:"statistic"`
	Points    []BucketPoint `json:"points"`
}

// Key returns the rollup key of the series
func (s TimeBucketSeries) Key() SeriesKey {
	return SeriesKey{Width: s.Width, Statistic: s.Statistic}
}

// Cell is one group's value at a merged bucket. Present is false when the
// group has no point at that bucket ("no data").
type Cell struct {
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
}

// NoData is the absent cell
var NoData = Cell{}

// String renders the cell for text output
func (c Cell) String() string {
	if !c.Present {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f", c.Value)
}

// MergedRow holds the cells of every group at one bucket start.
// Cells are ordered like MergedSeries.Groups.
type MergedRow struct {
	Start time.Time `json:"start"`
	Cells []Cell    `json:"cells"`
}

// Total sums the present cells of the row
func (r MergedRow) Total() float64 {
	var total float64
	for _, c := range r.Cells {
		if c.Present {
			total += c.Value
		}
	}
	return total
}

// MergedSeries is the outer join of all groups' series for one rollup
type MergedSeries struct {
	Width     BucketWidth `json:"width"`
	Statistic Statistic   `json:"statistic"`
	Groups    []string    `json:"groups"`
	Rows      []MergedRow `json:"rows"`
}

// IsEmpty reports whether the merged table has no rows
func (m MergedSeries) IsEmpty() bool {
	return len(m.Rows) == 0
}

// Aggregates is the full output of the aggregation stage
type Aggregates struct {
	Summaries []GroupSummary             `json:"summaries"`
	Series    []TimeBucketSeries         `json:"series"`
	Merged    map[SeriesKey]MergedSeries `json:"-"`
}

// IsEmpty reports whether nothing was aggregated
func (a *Aggregates) IsEmpty() bool {
	return a == nil || len(a.Summaries) == 0
}

// SeriesFor returns every group's series for the given rollup, in group order
func (a *Aggregates) SeriesFor(key SeriesKey) []TimeBucketSeries {
	if a == nil {
		return nil
	}
	var out []TimeBucketSeries
	for _, s := range a.Series {
		if s.Key() == key {
			out = append(out, s)
		}
	}
	return out
}

// MergedFor returns the merged table for the rollup, if it was computed
func (a *Aggregates) MergedFor(key SeriesKey) (MergedSeries, bool) {
	if a == nil || a.Merged == nil {
		return MergedSeries{}, false
	}
	m, ok := a.Merged[key]
	return m, ok
}

func sortStrings(s []string) {
	sort.Strings(s)
}
