package quarter

import (
	"fmt"
	"time"
)

// Unit is a calendar unit understood by a UnitBoundary.
type Unit int

const (
	Day Unit = iota + 1
	Month
	Quarter
	Year
)

// String returns the lowercase unit name.
func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// UnitBoundary locates the start and end of the calendar unit containing t,
// on t's own wall clock. EndOf must return the last representable instant of
// the unit.
type UnitBoundary interface {
	StartOf(t time.Time, unit Unit) time.Time
	EndOf(t time.Time, unit Unit) time.Time
}

// Builtin is the package's own UnitBoundary.
type Builtin struct{}

var _ UnitBoundary = Builtin{}

// StartOf implements UnitBoundary.
func (Builtin) StartOf(t time.Time, unit Unit) time.Time {
	y, m, d := t.Date()
	loc := t.Location()

	switch unit {
	case Day:
		return Midnight(y, m, d, loc)
	case Month:
		return Midnight(y, m, 1, loc)
	case Quarter:
		return Midnight(y, startMonth(m), 1, loc)
	case Year:
		return Midnight(y, time.January, 1, loc)
	default:
		panic(fmt.Sprintf("quarter: unsupported unit %v", unit))
	}
}

// EndOf implements UnitBoundary.
func (Builtin) EndOf(t time.Time, unit Unit) time.Time {
	y, m, d := t.Date()
	loc := t.Location()

	var next time.Time

	switch unit {
	case Day:
		next = Midnight(y, m, d+1, loc)
	case Month:
		next = Midnight(y, m+1, 1, loc)
	case Quarter:
		// Month 13 rolls into January of the following year.
		next = Midnight(y, startMonth(m)+3, 1, loc)
	case Year:
		next = Midnight(y+1, time.January, 1, loc)
	default:
		panic(fmt.Sprintf("quarter: unsupported unit %v", unit))
	}

	return next.Add(-Tick)
}

// Midnight returns the first instant of day y-m-d on loc's wall clock.
// Out-of-range values normalize as in time.Date. When a zone transition
// skips local midnight, the day opens at the transition itself; when it
// repeats local midnight, the earlier reading wins.
func Midnight(y int, m time.Month, d int, loc *time.Location) time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	want := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start, end := t.ZoneBounds()

	ty, tm, td := t.Date()
	if time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Before(want) {
		// time.Date resolved the missing reading to the day before.
		if !end.IsZero() {
			return end
		}

		return t
	}

	if !start.IsZero() {
		_, off := t.Zone()
		_, prev := start.Add(-Tick).Zone()

		if earlier := t.Add(time.Duration(off-prev) * time.Second); earlier.Before(start) {
			return earlier
		}
	}

	return t
}

// startMonth maps a month to the first month of its quarter.
func startMonth(m time.Month) time.Month {
	return time.Month((int(m)-1)/3*3 + 1)
}
