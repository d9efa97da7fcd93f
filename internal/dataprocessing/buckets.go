package dataprocessing

import (
	"fmt"
	"sort"
	"time"

	"energyreport/pkg/contracts/domain"
)

// BucketStart returns the start of the bucket containing t, in t's location.
// Daily buckets start at midnight, weekly buckets on Monday at midnight and
// monthly buckets on the first of the month.
func BucketStart(t time.Time, width domain.BucketWidth) time.Time {
	y, m, d := t.Date()
	loc := t.Location()

	switch width {
	case domain.BucketHourly:
		// Subtract in absolute time so a repeated DST hour stays two buckets
		return t.Add(-time.Duration(t.Minute())*time.Minute -
			time.Duration(t.Second())*time.Second -
			time.Duration(t.Nanosecond()))
	case domain.BucketDaily:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case domain.BucketWeekly:
		// Weekday: Sunday=0 ... Saturday=6; shift so Monday=0
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case domain.BucketMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		panic(fmt.Sprintf("unknown bucket width %q", width))
	}
}

// NextBucket returns the start of the bucket following the one starting at start
func NextBucket(start time.Time, width domain.BucketWidth) time.Time {
	switch width {
	case domain.BucketHourly:
		return BucketStart(start.Add(time.Hour), width)
	case domain.BucketDaily:
		return start.AddDate(0, 0, 1)
	case domain.BucketWeekly:
		return start.AddDate(0, 0, 7)
	case domain.BucketMonthly:
		return start.AddDate(0, 1, 0)
	default:
		panic(fmt.Sprintf("unknown bucket width %q", width))
	}
}

// bucketAcc accumulates the records falling into one bucket
type bucketAcc struct {
	start time.Time
	sum   float64
	max   float64
	count int
}

func (b *bucketAcc) add(v float64) {
	if b.count == 0 || v > b.max {
		b.max = v
	}
	b.sum += v
	b.count++
}

func (b *bucketAcc) reduce(stat domain.Statistic) float64 {
	switch stat {
	case domain.StatSum:
		return b.sum
	case domain.StatMean:
		if b.count == 0 {
			return 0
		}
		return b.sum / float64(b.count)
	case domain.StatMax:
		return b.max
	default:
		panic(fmt.Sprintf("unknown statistic %q", stat))
	}
}

// BuildSeries rolls one group's time-sorted records up into buckets of the
// given width. Sums carry empty buckets between the first and last bucket
// as zero; means and maxima omit them.
func BuildSeries(group string, records []domain.Record, key domain.SeriesKey) domain.TimeBucketSeries {
	series := domain.TimeBucketSeries{
		Group:     group,
		Width:     key.Width,
		Statistic: key.Statistic,
		Points:    []domain.BucketPoint{},
	}
	if len(records) == 0 {
		return series
	}

	var accs []*bucketAcc
	index := make(map[int64]*bucketAcc)
	for _, r := range records {
		start := BucketStart(r.Timestamp, key.Width)
		acc, ok := index[start.UnixNano()]
		if !ok {
			acc = &bucketAcc{start: start}
			index[start.UnixNano()] = acc
			accs = append(accs, acc)
		}
		acc.add(r.Value)
	}
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].start.Before(accs[j].start)
	})

	if !key.Statistic.ZeroFill() {
		for _, acc := range accs {
			series.Points = append(series.Points, domain.BucketPoint{
				Start: acc.start,
				Value: acc.reduce(key.Statistic),
				Count: acc.count,
			})
		}
		return series
	}

	last := accs[len(accs)-1].start
	for start := accs[0].start; !start.After(last); start = NextBucket(start, key.Width) {
		point := domain.BucketPoint{Start: start}
		if acc, ok := index[start.UnixNano()]; ok {
			point.Value = acc.reduce(key.Statistic)
			point.Count = acc.count
		}
		series.Points = append(series.Points, point)
	}
	return series
}
