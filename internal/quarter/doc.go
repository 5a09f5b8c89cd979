// Package quarter computes calendar-quarter boundaries.
//
// A quarter is the three-month span that begins on January 1, April 1, July 1
// or October 1. Start returns the first instant of the quarter containing t and
// End returns the last representable instant of it (one nanosecond before the
// next quarter begins).
//
// The Tz variants interpret an instant through a *time.Location: the quarter is
// located on that zone's wall clock and the result is returned in UTC. The
// Next/Previous variants shift that UTC result by three calendar months with
// AddMonths.
//
// Every function is pure and safe for concurrent use.
package quarter
