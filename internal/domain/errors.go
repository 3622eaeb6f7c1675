package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports invalid input to a constructor or operation.
// Always recoverable by the caller supplying valid input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// TransitionError reports an operation invoked while an entity is in a
// state that forbids it. The operation performs no mutation.
type TransitionError struct {
	Entity string
	Op     string
	State  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: invalid %s call for current state %s", e.Entity, e.Op, e.State)
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func newTransitionError(entity, op, state string) error {
	return &TransitionError{Entity: entity, Op: op, State: state}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsTransition reports whether err is a TransitionError
func IsTransition(err error) bool {
	var t *TransitionError
	return errors.As(err, &t)
}
