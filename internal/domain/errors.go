package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned by repository updates when the record was
// modified concurrently (optimistic-concurrency check failed).
var ErrVersionConflict = errors.New("record was modified concurrently")

// ValidationError reports user input that fails a precondition. It is
// surfaced as a field-level message; nothing is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidTransitionError reports a lifecycle precondition violation, such as
// collecting before delivery or renewing a finalized contract. It is a
// user-facing condition, never fatal.
type InvalidTransitionError struct {
	Action string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s: %s", e.Action, e.Reason)
}

func NewInvalidTransition(action, reason string) error {
	return &InvalidTransitionError{Action: action, Reason: reason}
}

// IsInvalidTransition reports whether err is a lifecycle precondition
// violation.
func IsInvalidTransition(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}

// ConflictError reports an operation blocked by the current state of other
// records, such as deleting equipment that is attached to an active rental.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
}

func NewConflictError(resource, reason string) error {
	return &ConflictError{Resource: resource, Reason: reason}
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c) || errors.Is(err, ErrVersionConflict)
}

// PersistenceError wraps a storage failure so callers can distinguish it
// from domain conditions and offer a retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
