package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported calendar range for instants accepted from callers and for computed boundaries.
const (
	MinYear = 1
	MaxYear = 9999
)

// Edge selects which boundary of a quarter is requested.
type Edge string

// Quarter edges.
const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// Valid reports whether e is a known edge.
func (e Edge) Valid() bool {
	return e == EdgeStart || e == EdgeEnd
}

// ParseEdge parses "start" or "end" (case-insensitive). Empty means start.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(EdgeStart):
		return EdgeStart, nil
	case string(EdgeEnd):
		return EdgeEnd, nil
	default:
		return "", NewValidationErrorWithValue("edge", "must be start or end", s)
	}
}

// Offset selects a quarter relative to the one containing the instant.
type Offset int

// Quarter offsets.
const (
	OffsetPrevious Offset = -1
	OffsetCurrent  Offset = 0
	OffsetNext     Offset = 1
)

// Valid reports whether o is one of the supported offsets.
func (o Offset) Valid() bool {
	return o >= OffsetPrevious && o <= OffsetNext
}

// String returns the offset's name.
func (o Offset) String() string {
	switch o {
	case OffsetPrevious:
		return "previous"
	case OffsetCurrent:
		return "current"
	case OffsetNext:
		return "next"
	default:
		return strconv.Itoa(int(o))
	}
}

// ParseOffset accepts previous|current|next or -1|0|1. Empty means current.
func ParseOffset(s string) (Offset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current", "0":
		return OffsetCurrent, nil
	case "previous", "prev", "-1":
		return OffsetPrevious, nil
	case "next", "1", "+1":
		return OffsetNext, nil
	default:
		return 0, NewValidationErrorWithValue("offset", "must be previous, current or next", s)
	}
}

// BoundaryQuery asks for one quarter boundary.
// An empty Zone computes in the frame carried by At itself.
type BoundaryQuery struct {
	At     time.Time
	Zone   string
	Edge   Edge
	Offset Offset
}

// Validate checks the query before any zone lookup happens.
func (q BoundaryQuery) Validate() error {
	if q.At.IsZero() {
		return NewValidationError("at", "is required")
	}

	if err := CheckYear("at", q.At); err != nil {
		return err
	}

	if !q.Edge.Valid() {
		return NewValidationErrorWithValue("edge", "must be start or end", string(q.Edge))
	}

	if !q.Offset.Valid() {
		return NewValidationErrorWithValue("offset", "must be -1, 0 or 1", int(q.Offset))
	}

	return nil
}

// CheckYear rejects instants whose year falls outside MinYear..MaxYear,
// both on their own clock and in UTC.
func CheckYear(field string, t time.Time) error {
	for _, y := range []int{t.Year(), t.UTC().Year()} {
		if y < MinYear || y > MaxYear {
			return NewValidationErrorWithValue(field,
				fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear), y)
		}
	}

	return nil
}

// Boundary is a computed quarter boundary.
type Boundary struct {
	Query BoundaryQuery

	// Zone is the resolved zone name; empty when computed in the input's own frame.
	Zone string

	// Quarter labels the quarter the boundary belongs to, e.g. "2023-Q2".
	Quarter string

	// At is the boundary instant. UTC when a zone was used.
	At time.Time
}

// QuarterSpan is one quarter with both of its edges.
type QuarterSpan struct {
	Quarter string
	Start   time.Time
	End     time.Time
}

// Window is the quarter containing an instant together with its neighbours.
type Window struct {
	At       time.Time
	Zone     string
	Previous QuarterSpan
	Current  QuarterSpan
	Next     QuarterSpan
}

// BoundaryResult is one entry of a batch computation.
// Exactly one of Boundary and Err is set.
type BoundaryResult struct {
	Index    int
	Boundary *Boundary
	Err      error
}

// DateLayout is the date-only form accepted wherever an instant is expected.
const DateLayout = "2006-01-02"

// ParseInstant reads an RFC 3339 timestamp, or a bare date which is taken as
// midnight in loc (UTC when loc is nil).
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, NewValidationErrorWithValue("at", "must be an RFC 3339 timestamp or YYYY-MM-DD date", s)
	}

	return t, nil
}
