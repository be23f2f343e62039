package dosage

import (
	"errors"
	"fmt"
)

// ErrorType classifies dosage errors.
type ErrorType string

const (
	ErrInvalidDosage      ErrorType = "invalid_dosage"
	ErrInvalidRate        ErrorType = "invalid_rate"
	ErrInvalidProgression ErrorType = "invalid_progression"
	ErrUnitMismatch       ErrorType = "unit_mismatch"
)

// Error is returned for malformed dosage input or incompatible units.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether err is a *Error of type t.
func IsErrorType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
