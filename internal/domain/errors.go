// Package domain holds the quarter types shared by the service, the CLI and
// their adapters. Errors here describe what went wrong with a query; the
// adapters decide how to report them (HTTP status, exit code).
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every error caused by an unusable query.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable matches failures of a dependency such as the zone database.
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError names the query field that was rejected.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid query: " + e.Message
	}

	return "invalid " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue also records the rejected value for logging.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ZoneError is returned when a zone name cannot be resolved. It is a
// validation error and also wraps the lookup failure, if any.
type ZoneError struct {
	Name string
	Err  error
}

func (e *ZoneError) Error() string {
	msg := fmt.Sprintf("time zone %q not found", e.Name)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ZoneError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}

	return []error{ErrValidation, e.Err}
}

// Field is the request field zone names arrive in.
func (e *ZoneError) Field() string { return "tz" }

func NewZoneError(name string, err error) error {
	return &ZoneError{Name: name, Err: err}
}

// UnavailableError reports that Service could not be used.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return e.Service + " unavailable"
	}

	return e.Service + " unavailable: " + e.Reason
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

func IsZoneError(err error) bool {
	var zerr *ZoneError
	return errors.As(err, &zerr)
}
