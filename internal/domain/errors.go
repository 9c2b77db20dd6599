package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrConflict      = errors.New("resource conflict")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidState  = errors.New("operation not valid in current cycle state")
	ErrWindowExpired = errors.New("reading window expired")
	ErrTooEarly      = errors.New("reading submitted too early")
	ErrCorruptQueue  = errors.New("pending operation queue is unreadable")
)

// ValidationError describes a rejected input. It unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WindowError is returned when a reading falls outside its slot window.
// It unwraps to ErrWindowExpired or ErrTooEarly.
type WindowError struct {
	Kind error
	// Slot is the minute-offset the reading was submitted for.
	Slot int
	// Elapsed is the time since the start event at submission.
	Elapsed time.Duration
	// Earliest is the first elapsed time accepted for the slot.
	Earliest time.Duration
	// Deadline is the elapsed time at which the slot is missed.
	Deadline time.Duration
}

func (e *WindowError) Error() string {
	switch e.Kind {
	case ErrTooEarly:
		return fmt.Sprintf("slot %d opens at %s, elapsed %s", e.Slot, e.Earliest, e.Elapsed.Truncate(time.Second))
	default:
		return fmt.Sprintf("slot %d closed at %s, elapsed %s", e.Slot, e.Deadline, e.Elapsed.Truncate(time.Second))
	}
}

func (e *WindowError) Unwrap() error {
	return e.Kind
}
