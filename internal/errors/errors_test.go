package errors

import (
	"fmt"
	"testing"
)

func TestUsageError(t *testing.T) {
	err := NewUsageError("complete", ErrTaskNotAssigned).WithTaskID("t1")

	want := "usage error [task=t1]: complete: task is not assigned"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrTaskNotAssigned) {
		t.Error("Is(err, ErrTaskNotAssigned) = false")
	}
	if !IsUsage(err) {
		t.Error("IsUsage() = false")
	}
	if IsNotFound(err) {
		t.Error("IsNotFound() = true for usage error")
	}
}

func TestUsageErrorWithAgentID(t *testing.T) {
	err := NewUsageError("assign", ErrTaskAlreadyAssigned).WithTaskID("t1").WithAgentID("a1")
	want := "usage error [task=t1, agent=a1]: assign: task already assigned"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("agent", "a1").WithCause(ErrAgentNotFound)

	want := "agent 'a1' not found: agent not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false")
	}
	if !Is(err, ErrAgentNotFound) {
		t.Error("Is(err, ErrAgentNotFound) = false")
	}
	if IsUsage(err) {
		t.Error("IsUsage() = true for not-found error")
	}
}

func TestNotFoundErrorWithoutCause(t *testing.T) {
	err := NewNotFoundError("task", "t9")
	want := "task 't9' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("must not be empty").WithField("required").WithValue([]string{})

	got := err.Error()
	if got != "validation error [field=required, value=[]]: must not be empty" {
		t.Errorf("Error() = %q", got)
	}

	var verr *ValidationError
	if !As(err, &verr) {
		t.Error("As(*ValidationError) = false")
	}
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrAgentExists, "registering worker")
	if !Is(err, ErrAgentExists) {
		t.Error("wrapped error lost its sentinel")
	}
	want := "registering worker: agent already registered"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = Wrapf(ErrTaskNotFound, "task %s", "t1")
	if !Is(err, ErrTaskNotFound) {
		t.Error("Wrapf lost the sentinel")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) != nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) != nil")
	}
}

func TestUsageErrorThroughWrapping(t *testing.T) {
	inner := NewUsageError("complete", ErrTaskCompleted).WithTaskID("t1")
	outer := fmt.Errorf("handling request: %w", inner)

	if !IsUsage(outer) {
		t.Error("IsUsage() = false through fmt.Errorf wrapping")
	}
	if !Is(outer, ErrTaskCompleted) {
		t.Error("Is(outer, ErrTaskCompleted) = false through wrapping")
	}
}

func TestClassifiersOnNil(t *testing.T) {
	if IsUsage(nil) {
		t.Error("IsUsage(nil) = true")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true")
	}
}
