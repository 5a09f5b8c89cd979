package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("unknown time zone Mars/Base")

	tests := map[string]struct {
		err  error
		want string
	}{
		"field":            {NewValidationError("edge", "must be start or end"), "invalid edge: must be start or end"},
		"no field":         {NewValidationError("", "empty batch"), "invalid query: empty batch"},
		"value":            {NewValidationErrorWithValue("offset", "must be -1, 0 or 1", 7), "invalid offset: must be -1, 0 or 1"},
		"zone":             {NewZoneError("Nowhere", nil), `time zone "Nowhere" not found`},
		"zone with cause":  {NewZoneError("Mars/Base", cause), `time zone "Mars/Base" not found: unknown time zone Mars/Base`},
		"unavailable":      {NewUnavailableError("tzdata", ""), "tzdata unavailable"},
		"unavailable with": {NewUnavailableError("tzdata", "zone database unreadable"), "tzdata unavailable: zone database unreadable"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestValidationError_Fields(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, fmt.Errorf("item 2: %w", NewValidationErrorWithValue("offset", "out of range", 7)), &verr)

	assert.Equal(t, "offset", verr.Field)
	assert.Equal(t, 7, verr.Value)
	assert.ErrorIs(t, verr, ErrValidation)
}

func TestZoneError_Unwrap(t *testing.T) {
	cause := errors.New("malformed time zone information")
	err := fmt.Errorf("item 3: %w", NewZoneError("Europe/Paris", cause))

	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, cause)

	var zerr *ZoneError
	require.ErrorAs(t, err, &zerr)
	assert.Equal(t, "tz", zerr.Field())
	assert.Equal(t, "Europe/Paris", zerr.Name)

	assert.NotErrorIs(t, NewZoneError("X", nil), cause)
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		err                        error
		validation, unavail, zone bool
	}{
		{err: nil},
		{err: errors.New("boom")},
		{err: ErrValidation, validation: true},
		{err: NewValidationError("at", "invalid"), validation: true},
		{err: fmt.Errorf("wrapped: %w", NewZoneError("X", nil)), validation: true, zone: true},
		{err: ErrUnavailable, unavail: true},
		{err: fmt.Errorf("wrapped: %w", NewUnavailableError("tzdata", "")), unavail: true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.validation, IsValidation(tt.err), "IsValidation(%v)", tt.err)
		assert.Equal(t, tt.unavail, IsUnavailable(tt.err), "IsUnavailable(%v)", tt.err)
		assert.Equal(t, tt.zone, IsZoneError(tt.err), "IsZoneError(%v)", tt.err)
	}

	assert.NotErrorIs(t, ErrValidation, ErrUnavailable)
}
