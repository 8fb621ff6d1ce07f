// Package errors provides centralized error definitions for the qfox
// assignment core. It defines sentinel errors for lifecycle misuse, semantic
// error types with context wrapping, and classification helpers.
//
// The core distinguishes two failure families:
//
//   - Usage errors: calling an operation in a state it does not permit,
//     such as completing a task that was never assigned. These are surfaced
//     at the point of misuse, never swallowed.
//   - Not-found errors: referencing an agent or task ID the registry does
//     not hold.
//
// Degenerate input (a task no agent can serve) is deliberately NOT an
// error; assignment returns a defined empty result instead.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions so callers can import only this
// package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Task lifecycle sentinel errors.
var (
	// ErrTaskNotFound indicates that a task ID is not in the registry.
	ErrTaskNotFound = New("task not found")
	// ErrTaskNotAssigned indicates completion was reported for a task that
	// was never assigned to an agent.
	ErrTaskNotAssigned = New("task is not assigned")
	// ErrTaskAlreadyAssigned indicates an assignment attempt on a task that
	// already has an agent.
	ErrTaskAlreadyAssigned = New("task already assigned")
	// ErrTaskCompleted indicates an operation on a task that already reached
	// its terminal state.
	ErrTaskCompleted = New("task already completed")
)

// Agent sentinel errors.
var (
	// ErrAgentNotFound indicates that an agent ID is not in the registry.
	ErrAgentNotFound = New("agent not found")
	// ErrAgentExists indicates a registration attempt with a duplicate ID.
	ErrAgentExists = New("agent already registered")
)

// General sentinel errors.
var (
	// ErrEmptyPool indicates an operation that requires at least one
	// registered agent was called against an empty registry.
	ErrEmptyPool = New("agent pool is empty")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// UsageError represents a lifecycle-state misuse: an operation invoked on a
// task or agent in a state that does not permit it.
//
// Example:
//
//	err := errors.NewUsageError("complete", errors.ErrTaskNotAssigned).WithTaskID("t1")
//	fmt.Println(err) // "usage error [task=t1]: complete: task is not assigned"
type UsageError struct {
	Operation string
	TaskID    string
	AgentID   string
	cause     error
}

// NewUsageError creates a UsageError for the named operation.
func NewUsageError(operation string, cause error) *UsageError {
	return &UsageError{Operation: operation, cause: cause}
}

// WithTaskID adds a task ID to the error context.
func (e *UsageError) WithTaskID(id string) *UsageError {
	e.TaskID = id
	return e
}

// WithAgentID adds an agent ID to the error context.
func (e *UsageError) WithAgentID(id string) *UsageError {
	e.AgentID = id
	return e
}

// Error returns the formatted error message.
func (e *UsageError) Error() string {
	var parts []string
	if e.TaskID != "" {
		parts = append(parts, fmt.Sprintf("task=%s", e.TaskID))
	}
	if e.AgentID != "" {
		parts = append(parts, fmt.Sprintf("agent=%s", e.AgentID))
	}

	prefix := "usage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("usage error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Operation, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Operation)
}

// Unwrap returns the underlying cause.
func (e *UsageError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *UsageError) Is(target error) bool {
	if _, ok := target.(*UsageError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("agent", "a1")
//	fmt.Println(err) // "agent 'a1' not found"
type NotFoundError struct {
	ResourceType string
	ResourceID   string
	cause        error
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{ResourceType: resourceType, ResourceID: resourceID}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Unwrap returns the underlying cause.
func (e *NotFoundError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// ValidationError represents invalid input.
type ValidationError struct {
	Field string
	Value any
	msg   string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{msg: message}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.msg)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return errors.Is(target, ErrInvalidInput)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUsage reports whether the error is a lifecycle-state misuse.
func IsUsage(err error) bool {
	if err == nil {
		return false
	}
	var usage *UsageError
	return As(err, &usage)
}

// IsNotFound reports whether the error is a missing agent or task.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound *NotFoundError
	if As(err, &notFound) {
		return true
	}
	return Is(err, ErrAgentNotFound) || Is(err, ErrTaskNotFound)
}

// Wrap wraps an error with an additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
