package domain

import (
	"time"
)

// RawRecord is one row as read from an input file, before any coercion.
// Timestamp and Value keep the cell text exactly as it appeared.
type RawRecord struct {
	Source    string            `json:"source"`
	Group     string            `json:"group"`
	Timestamp string            `json:"timestamp"`
	Value     string            `json:"value"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// UnifiedTable is the concatenation of every successfully loaded file.
// Columns lists the extra (non-required) columns in first-appearance order.
type UnifiedTable struct {
	Records []RawRecord `json:"records"`
	Columns []string    `json:"columns,omitempty"`
}

// Len returns the number of raw records
func (t UnifiedTable) Len() int {
	return len(t.Records)
}

// IsEmpty reports whether the table holds no records
func (t UnifiedTable) IsEmpty() bool {
	return len(t.Records) == 0
}

// Record is a single cleaned observation.
type Record struct {
	Source    string            `json:"source"`
	Group     string            `json:"group" validate:"required"`
	Timestamp time.Time         `json:"timestamp" validate:"required"`
	Value     float64           `json:"value"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// CleanTable holds cleaned records sorted by timestamp ascending.
type CleanTable struct {
	Records []Record `json:"records"`
	Columns []string `json:"columns,omitempty"`
}

// Len returns the number of cleaned records
func (t CleanTable) Len() int {
	return len(t.Records)
}

// IsEmpty reports whether the table holds no records
func (t CleanTable) IsEmpty() bool {
	return len(t.Records) == 0
}

// Groups returns the distinct group keys in sorted order
func (t CleanTable) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, r := range t.Records {
		if !seen[r.Group] {
			seen[r.Group] = true
			groups = append(groups, r.Group)
		}
	}
	sortStrings(groups)
	return groups
}
