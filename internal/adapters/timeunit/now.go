// Package timeunit provides quarter.UnitBoundary implementations backed by
// third-party calendar libraries.
package timeunit

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"github.com/jsamuelsen/quarter-service/internal/quarter"
)

// Now resolves unit boundaries with github.com/jinzhu/now.
// The calendar arithmetic runs on the input's wall clock; the resulting day
// is then anchored back on the input's location with quarter.Midnight, so
// days whose local midnight was skipped still open on the right date.
type Now struct {
	cfg *now.Config
}

var _ quarter.UnitBoundary = (*Now)(nil)

// NewNow returns a jinzhu/now backed UnitBoundary.
func NewNow() *Now {
	return &Now{cfg: &now.Config{WeekStartDay: time.Monday}}
}

// StartOf implements quarter.UnitBoundary.
func (n *Now) StartOf(t time.Time, unit quarter.Unit) time.Time {
	w := n.with(t)

	var first time.Time

	switch unit {
	case quarter.Day:
		first = w.BeginningOfDay()
	case quarter.Month:
		first = w.BeginningOfMonth()
	case quarter.Quarter:
		first = w.BeginningOfQuarter()
	case quarter.Year:
		first = w.BeginningOfYear()
	default:
		panic(fmt.Sprintf("timeunit: unsupported unit %v", unit))
	}

	return anchor(first, 0, t.Location())
}

// EndOf implements quarter.UnitBoundary.
func (n *Now) EndOf(t time.Time, unit quarter.Unit) time.Time {
	w := n.with(t)

	var last time.Time

	switch unit {
	case quarter.Day:
		last = w.EndOfDay()
	case quarter.Month:
		last = w.EndOfMonth()
	case quarter.Quarter:
		last = w.EndOfQuarter()
	case quarter.Year:
		last = w.EndOfYear()
	default:
		panic(fmt.Sprintf("timeunit: unsupported unit %v", unit))
	}

	return anchor(last, 1, t.Location()).Add(-quarter.Tick)
}

// with hands jinzhu/now t's wall clock reading in UTC, where every day has
// a midnight.
func (n *Now) with(t time.Time) *now.Now {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	return n.cfg.With(time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC))
}

// anchor returns the first instant on loc of the day days after b's date.
func anchor(b time.Time, days int, loc *time.Location) time.Time {
	y, m, d := b.Date()
	return quarter.Midnight(y, m, d+days, loc)
}

// Engine names accepted by ForEngine.
const (
	EngineBuiltin = "builtin"
	EngineNow     = "now"
)

// ForEngine returns the UnitBoundary registered under name.
func ForEngine(name string) (quarter.UnitBoundary, error) {
	switch name {
	case "", EngineBuiltin:
		return quarter.Builtin{}, nil
	case EngineNow:
		return NewNow(), nil
	default:
		return nil, fmt.Errorf("unknown quarter engine %q", name)
	}
}
