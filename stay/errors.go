package stay

import (
	"errors"
	"fmt"
)

var (
	// ErrOrdering is returned when check-out falls before check-in
	ErrOrdering = errors.New("check-out before check-in")
	// ErrSpanTooLong is returned when a stay exceeds the maximum span
	ErrSpanTooLong = errors.New("stay span too long")
)

// ValidationError explains why a stay period was rejected. Message is the
// localized text meant for the person filling the booking form.
type ValidationError struct {
	Err     error
	Message string
	// SpanDays is the whole-day difference between the normalized dates.
	SpanDays int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v (span %d days)", e.Err, e.SpanDays)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
