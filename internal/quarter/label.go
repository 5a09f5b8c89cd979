package quarter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidQuarter is returned by Parse for malformed labels.
var ErrInvalidQuarter = errors.New("invalid quarter")

// Label identifies a quarter by year and number (1-4).
type Label struct {
	Year   int
	Number int
}

// Of returns the label of the quarter containing t on t's wall clock.
func Of(t time.Time) Label {
	return Label{Year: t.Year(), Number: (int(t.Month())-1)/3 + 1}
}

// Parse reads a label in the form "2023-Q1". The "Q" is case-insensitive.
func Parse(s string) (Label, error) {
	year, num, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "-Q")
	if !ok {
		return Label{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return Label{}, fmt.Errorf("%w: %q: year: %w", ErrInvalidQuarter, s, err)
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > 4 {
		return Label{}, fmt.Errorf("%w: %q: quarter must be 1-4", ErrInvalidQuarter, s)
	}

	return Label{Year: y, Number: n}, nil
}

// String formats the label as "2023-Q1".
func (l Label) String() string {
	return fmt.Sprintf("%d-Q%d", l.Year, l.Number)
}

// Next returns the following quarter.
func (l Label) Next() Label {
	if l.Number >= 4 {
		return Label{Year: l.Year + 1, Number: 1}
	}

	return Label{Year: l.Year, Number: l.Number + 1}
}

// Prev returns the preceding quarter.
func (l Label) Prev() Label {
	if l.Number <= 1 {
		return Label{Year: l.Year - 1, Number: 4}
	}

	return Label{Year: l.Year, Number: l.Number - 1}
}

// Bounds returns the first and last instant of the quarter on loc's wall
// clock. A nil loc is treated as UTC.
func (l Label) Bounds(loc *time.Location) (start, end time.Time) {
	start = Midnight(l.Year, time.Month((l.Number-1)*3+1), 1, orUTC(loc))
	return start, End(start)
}

// Contains reports whether t falls inside the quarter on t's wall clock.
func (l Label) Contains(t time.Time) bool {
	return Of(t) == l
}
