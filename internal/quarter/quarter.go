package quarter

import "time"

// Tick is the smallest step a time.Time can take.
const Tick = time.Nanosecond

// monthsPerQuarter is the offset applied by the Next and Previous variants.
const monthsPerQuarter = 3

// Calculator computes quarter boundaries on top of a UnitBoundary.
// The zero value is not usable; construct one with New.
type Calculator struct {
	units UnitBoundary
}

// New returns a Calculator backed by units. A nil units selects Builtin.
func New(units UnitBoundary) *Calculator {
	if units == nil {
		units = Builtin{}
	}

	return &Calculator{units: units}
}

var std = New(Builtin{})

// Start returns the first instant of the quarter containing t, in t's location.
func (c *Calculator) Start(t time.Time) time.Time {
	return c.units.StartOf(t, Quarter)
}

// End returns the last instant of the quarter containing t, in t's location.
func (c *Calculator) End(t time.Time) time.Time {
	return c.units.EndOf(t, Quarter)
}

// StartTz returns, in UTC, the start of the quarter containing u on zone's
// wall clock. A nil zone is treated as UTC.
func (c *Calculator) StartTz(u time.Time, zone *time.Location) time.Time {
	return c.Start(u.In(orUTC(zone))).UTC()
}

// EndTz returns, in UTC, the end of the quarter containing u on zone's wall
// clock. A nil zone is treated as UTC.
func (c *Calculator) EndTz(u time.Time, zone *time.Location) time.Time {
	return c.End(u.In(orUTC(zone))).UTC()
}

// StartOfNextTz is StartTz moved forward three calendar months.
func (c *Calculator) StartOfNextTz(u time.Time, zone *time.Location) time.Time {
	return AddMonths(c.StartTz(u, zone), monthsPerQuarter)
}

// StartOfPreviousTz is StartTz moved back three calendar months.
func (c *Calculator) StartOfPreviousTz(u time.Time, zone *time.Location) time.Time {
	return AddMonths(c.StartTz(u, zone), -monthsPerQuarter)
}

// EndOfNextTz is EndTz moved forward three calendar months.
func (c *Calculator) EndOfNextTz(u time.Time, zone *time.Location) time.Time {
	return AddMonths(c.EndTz(u, zone), monthsPerQuarter)
}

// EndOfPreviousTz is EndTz moved back three calendar months.
func (c *Calculator) EndOfPreviousTz(u time.Time, zone *time.Location) time.Time {
	return AddMonths(c.EndTz(u, zone), -monthsPerQuarter)
}

func orUTC(zone *time.Location) *time.Location {
	if zone == nil {
		return time.UTC
	}

	return zone
}

// Start returns the first instant of the quarter containing t, in t's location.
func Start(t time.Time) time.Time { return std.Start(t) }

// End returns the last instant of the quarter containing t, in t's location.
func End(t time.Time) time.Time { return std.End(t) }

// StartTz returns, in UTC, the start of u's quarter on zone's wall clock.
func StartTz(u time.Time, zone *time.Location) time.Time { return std.StartTz(u, zone) }

// EndTz returns, in UTC, the end of u's quarter on zone's wall clock.
func EndTz(u time.Time, zone *time.Location) time.Time { return std.EndTz(u, zone) }

// StartOfNextTz is StartTz moved forward three calendar months.
func StartOfNextTz(u time.Time, zone *time.Location) time.Time {
	return std.StartOfNextTz(u, zone)
}

// StartOfPreviousTz is StartTz moved back three calendar months.
func StartOfPreviousTz(u time.Time, zone *time.Location) time.Time {
	return std.StartOfPreviousTz(u, zone)
}

// EndOfNextTz is EndTz moved forward three calendar months.
func EndOfNextTz(u time.Time, zone *time.Location) time.Time {
	return std.EndOfNextTz(u, zone)
}

// EndOfPreviousTz is EndTz moved back three calendar months.
func EndOfPreviousTz(u time.Time, zone *time.Location) time.Time {
	return std.EndOfPreviousTz(u, zone)
}
