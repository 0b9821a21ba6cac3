package errors

import "errors"

// AbortedByUserError represents an operator-driven abort: an interrupt, a
// prompt timeout, or quitting the selection UI.
type AbortedByUserError struct {
	Reason string
}

func (e *AbortedByUserError) Error() string {
	return e.Reason
}

// NewAbortedByUserError creates an AbortedByUserError with the provided reason.
func NewAbortedByUserError(reason string) *AbortedByUserError {
	return &AbortedByUserError{Reason: reason}
}

// IsAbortedByUserError reports whether err is an AbortedByUserError (even when wrapped).
func IsAbortedByUserError(err error) bool {
	var target *AbortedByUserError
	return errors.As(err, &target)
}
