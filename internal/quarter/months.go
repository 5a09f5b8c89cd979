package quarter

import "time"

// AddMonths moves t by n calendar months, keeping its day-of-month, clock
// reading and location. When the target month is shorter than t's day the
// day is clamped to the target month's last day, so January 31 plus one month
// is February 28 (or 29), not March 3 as with time.Time.AddDate.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ty, tm, _ := first.Date()

	if last := daysIn(ty, tm); d > last {
		d = last
	}

	return time.Date(ty, tm, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in month m of year y.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
