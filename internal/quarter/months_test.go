package quarter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		months   int
		expected time.Time
	}{
		{"zero is identity", date(2023, time.May, 17), 0, date(2023, time.May, 17)},
		{"plain forward", date(2023, time.January, 15), 3, date(2023, time.April, 15)},
		{"forward across year", date(2023, time.December, 15), 3, date(2024, time.March, 15)},
		{"backward across year", date(2023, time.January, 15), -3, date(2022, time.October, 15)},
		{"clamp to february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp to leap february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"clamp backwards", date(2023, time.May, 31), -3, date(2023, time.February, 28)},
		{"clamp to thirty", date(2023, time.March, 31), 3, date(2023, time.June, 30)},
		{"whole years", date(2024, time.February, 29), -12, date(2023, time.February, 28)},
		{
			"keeps clock and nanoseconds",
			time.Date(2023, time.August, 31, 23, 59, 59, 999999999, time.UTC),
			3,
			time.Date(2023, time.November, 30, 23, 59, 59, 999999999, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.input, tt.months))
		})
	}
}

func TestAddMonths_KeepsLocation(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2023, time.March, 31, 10, 0, 0, 0, zone)

	got := AddMonths(in, 3)

	assert.Equal(t, zone, got.Location())
	assert.Equal(t, time.Date(2023, time.June, 30, 10, 0, 0, 0, zone), got)
}

func TestAddMonths_DiffersFromAddDate(t *testing.T) {
	in := date(2023, time.January, 31)

	assert.Equal(t, date(2023, time.March, 3), in.AddDate(0, 1, 0))
	assert.Equal(t, date(2023, time.February, 28), AddMonths(in, 1))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, daysIn(2023, time.January))
	assert.Equal(t, 28, daysIn(2023, time.February))
	assert.Equal(t, 29, daysIn(2024, time.February))
	assert.Equal(t, 28, daysIn(1900, time.February))
	assert.Equal(t, 29, daysIn(2000, time.February))
	assert.Equal(t, 30, daysIn(2023, time.November))
}
