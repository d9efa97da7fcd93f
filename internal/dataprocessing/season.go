package dataprocessing

import "time"

// Meteorological seasons used when records are grouped by season
const (
	SeasonSpring = "Spring (Mar-May)"
	SeasonSummer = "Summer (Jun-Aug)"
	SeasonAutumn = "Autumn (Sep-Nov)"
	SeasonWinter = "Winter (Dec-Feb)"
)

// SeasonOf returns the meteorological season of t's month
func SeasonOf(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
