package core

import (
	"errors"
	"fmt"
)

// The error taxonomy of the library. Every business failure wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// ErrValidation marks malformed input values like an ISBN or a date.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks requests that contradict the current state, e.g. a duplicate ISBN or a loaned book.
	ErrConflict = errors.New("conflict error")

	// ErrNotFound marks references to books or loans that do not exist.
	ErrNotFound = errors.New("not found error")

	// ErrInput marks operator input that can't be understood, e.g. an unknown menu item.
	ErrInput = errors.New("input error")
)

// BusinessError wraps kind with the failure event type and reason.
func BusinessError(kind error, eventType string, reason string) error {
	return fmt.Errorf("%w: %s: %s", kind, eventType, reason)
}
