// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter on anything that may block or fail
//   - Return domain types and domain errors (ErrValidation, ErrUnavailable)
//   - Keep interfaces small and focused
package ports

import (
	"context"
	"time"
)

// ZoneResolver turns IANA zone names into locations.
// An empty name resolves to the configured default zone. Unknown names
// return an error matching domain.ErrValidation.
type ZoneResolver interface {
	Resolve(ctx context.Context, name string) (*time.Location, error)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// QuarterMetrics records calculator activity.
type QuarterMetrics interface {
	// BoundaryComputed counts one computed boundary.
	BoundaryComputed(edge string, offset string, zoned bool)

	// ZoneLookupFailed counts a zone name that could not be resolved.
	ZoneLookupFailed()
}

// NopQuarterMetrics discards everything.
type NopQuarterMetrics struct{}

// BoundaryComputed implements QuarterMetrics.
func (NopQuarterMetrics) BoundaryComputed(string, string, bool) {}

// ZoneLookupFailed implements QuarterMetrics.
func (NopQuarterMetrics) ZoneLookupFailed() {}
