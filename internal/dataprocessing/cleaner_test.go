package dataprocessing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/internal/config"
	"energyreport/pkg/contracts/domain"
)

func raw(group, ts, value string) domain.RawRecord {
	return domain.RawRecord{Source: group, Group: group, Timestamp: ts, Value: value}
}

func TestCleanerClean(t *testing.T) {
	table := domain.UnifiedTable{
		Records: []domain.RawRecord{
			raw("a", "2024-01-01 02:00:00", "3"),
			raw("a", "2024-01-01 00:00:00", "1,000.5"),
			raw("b", "2024-01-01 01:00:00", " 2 "),
			raw("b", "2024-01-01 00:00:00", "abc"),
			raw("b", "", "4"),
			raw("", "2024-01-01 00:00:00", "4"),
			raw("c", "not a date", "4"),
			raw("c", "2024-01-01 03:00:00", ""),
			raw("c", "2024-01-01 03:00:00", "NaN"),
			raw("c", "2024-01-01 03:00:00", "+Inf"),
			raw("c", "2024-01-01T00:00:00Z", "5"),
		},
		Columns: []string{"Meter"},
	}

	cleaner := NewCleaner(config.Default(), nil)
	clean, stats := cleaner.Clean(context.Background(), table)

	assert.Equal(t, CleanStats{Input: 11, Kept: 4, Dropped: 7}, stats)
	assert.Equal(t, []string{"Meter"}, clean.Columns)
	require.Equal(t, 4, clean.Len())

	// Stable: equal timestamps keep load order
	assert.Equal(t, "a", clean.Records[0].Group)
	assert.Equal(t, 1000.5, clean.Records[0].Value)
	assert.Equal(t, "c", clean.Records[1].Group)
	assert.Equal(t, 5.0, clean.Records[1].Value)
	assert.Equal(t, "b", clean.Records[2].Group)
	assert.Equal(t, 2.0, clean.Records[2].Value)
	assert.Equal(t, 3.0, clean.Records[3].Value)

	for i := 1; i < clean.Len(); i++ {
		assert.False(t, clean.Records[i].Timestamp.Before(clean.Records[i-1].Timestamp))
	}
	for _, r := range clean.Records {
		assert.False(t, math.IsNaN(r.Value) || math.IsInf(r.Value, 0))
	}
}

func TestCleanerEmptyInput(t *testing.T) {
	clean, stats := NewCleaner(config.Default(), nil).Clean(context.Background(), domain.UnifiedTable{})

	assert.True(t, clean.IsEmpty())
	assert.Equal(t, CleanStats{}, stats)
}

func TestCleanerAllDropped(t *testing.T) {
	table := domain.UnifiedTable{Records: []domain.RawRecord{raw("a", "x", "y")}}

	clean, stats := NewCleaner(config.Default(), nil).Clean(context.Background(), table)

	assert.True(t, clean.IsEmpty())
	assert.Equal(t, 1, stats.Dropped)
}

func TestCleanerGroupBySeason(t *testing.T) {
	cfg := config.Default()
	cfg.Aggregation.GroupBy = GroupBySeason

	table := domain.UnifiedTable{Records: []domain.RawRecord{
		raw("station", "2024-01-15 00:00:00", "1"),
		raw("station", "2024-04-15 00:00:00", "2"),
		raw("station", "2024-07-15 00:00:00", "3"),
		raw("station", "2024-10-15 00:00:00", "4"),
	}}

	clean, _ := NewCleaner(cfg, nil).Clean(context.Background(), table)

	require.Equal(t, 4, clean.Len())
	assert.Equal(t, SeasonWinter, clean.Records[0].Group)
	assert.Equal(t, SeasonSpring, clean.Records[1].Group)
	assert.Equal(t, SeasonSummer, clean.Records[2].Group)
	assert.Equal(t, SeasonAutumn, clean.Records[3].Group)
	assert.Equal(t, "station", clean.Records[0].Source)
	assert.Equal(t, []string{SeasonAutumn, SeasonSpring, SeasonSummer, SeasonWinter}, clean.Groups())
}

func TestParseTimestamp(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	layouts := config.Default().Input.TimestampLayouts

	tests := []struct {
		name    string
		input   string
		loc     *time.Location
		want    time.Time
		wantErr bool
	}{
		{name: "seconds", input: "2024-03-01 12:30:15", loc: time.UTC, want: time.Date(2024, 3, 1, 12, 30, 15, 0, time.UTC)},
		{name: "minutes", input: "2024-03-01 12:30", loc: time.UTC, want: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{name: "date only", input: " 2024-03-01 ", loc: time.UTC, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "us date", input: "03/01/2024 08:00", loc: time.UTC, want: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{name: "local zone", input: "2024-03-01 12:00:00", loc: berlin, want: time.Date(2024, 3, 1, 12, 0, 0, 0, berlin)},
		{name: "rfc3339 converted", input: "2024-03-01T11:00:00Z", loc: berlin, want: time.Date(2024, 3, 1, 12, 0, 0, 0, berlin)},
		{name: "nil location", input: "2024-03-01", loc: nil, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "empty", input: "  ", loc: time.UTC, wantErr: true},
		{name: "garbage", input: "yesterday", loc: time.UTC, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, layouts, tt.loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			if tt.loc != nil {
				assert.Equal(t, tt.loc, got.Location())
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "12.5", want: 12.5},
		{input: " 7 ", want: 7},
		{input: "1,234.5", want: 1234.5},
		{input: "-3", want: -3},
		{input: "1e3", want: 1000},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "inf", wantErr: true},
		{input: "1e400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.December, SeasonWinter},
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.November, SeasonAutumn},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonOf(time.Date(2024, tt.month, 10, 0, 0, 0, 0, time.UTC)))
		})
	}
}
