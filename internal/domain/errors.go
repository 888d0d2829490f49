package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. no dates selected, unknown training mode).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConversion is the sentinel matched by errors.Is for every
// *ConversionError.
var ErrConversion = errors.New("conversion error")

// ConversionError reports a session whose start or end could not be
// interpreted as a wall-clock instant in its base timezone, or a timezone
// that is not in the tz database. The whole export fails on the first one.
type ConversionError struct {
	SessionID int
	Field     string // "start_time", "end_time", "base_timezone" or "timezone"
	Value     string
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("session %d: cannot convert %s %q: %v", e.SessionID, e.Field, e.Value, e.Err)
}

// Unwrap lets errors.Is match both ErrConversion and the underlying cause.
func (e *ConversionError) Unwrap() []error {
	return []error{ErrConversion, e.Err}
}
