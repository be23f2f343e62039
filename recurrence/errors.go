package recurrence

import (
	"errors"
	"fmt"
)

// ErrorType classifies caller-contract violations.
type ErrorType string

const (
	ErrInvalidRule   ErrorType = "invalid_rule"
	ErrInvalidOffset ErrorType = "invalid_offset"
)

// Error is returned when a rule or offset cannot be built from its input.
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

func newError(t ErrorType, msg string, err error) *Error {
	return &Error{Type: t, Message: msg, Err: err}
}

// IsErrorType reports whether err is a *Error of type t.
func IsErrorType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
