package domain

import "time"

// DateLayout is the day-granularity format used for all calendar fields.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysInclusive counts the days in [start, end] including both endpoints;
// a single-day range counts as 1. This is the billing convention: it matches
// how owners think about handing an item over and getting it back.
func DaysInclusive(start, end time.Time) int32 {
	return int32(end.Sub(start).Hours()/24) + 1
}

// DatesBetween enumerates every calendar day in [start, end] inclusive.
func DatesBetween(start, end time.Time) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}
