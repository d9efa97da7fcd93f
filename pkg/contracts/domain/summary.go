package domain

import (
	"time"
)

// NotAvailable is rendered wherever a value does not exist (e.g. the peak
// time of an empty group).
const NotAvailable = "N/A"

// GroupSummary holds the per-group statistics of the numeric field.
// A group without records has zero numbers and HasPeak set to false.
type GroupSummary struct {
	Group    string    `json:"group"`
	Count    int       `json:"count"`
	Total    float64   `json:"total"`
	Mean     float64   `json:"mean"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	PeakTime time.Time `json:"peak_time,omitempty"`
	HasPeak  bool      `json:"has_peak"`
}

// PeakTimeString formats the peak time, or returns NotAvailable
func (s GroupSummary) PeakTimeString(layout string) string {
	if !s.HasPeak {
		return NotAvailable
	}
	return s.PeakTime.Format(layout)
}
