package exporter

import (
	"fmt"
	"strconv"
)

// Timestamp layouts used in the artifacts
const (
	recordTimeLayout = "2006-01-02 15:04:05"
	peakTimeLayout   = "2006-01-02 15:04"
	bucketLayout     = "2006-01-02"
)

// formatFloat formats a float64 value with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatValue formats a measurement in its shortest round-trip form
func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// withUnit appends the unit to a formatted number when one is configured
func withUnit(value, unit string) string {
	if unit == "" {
		return value
	}
	return value + " " + unit
}
