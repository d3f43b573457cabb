// Package errors defines the error kinds raised by the admin gateway and the
// OperationError wrapper that generalizes them at the operation boundary.
package errors

import (
	"fmt"
)

var (
	ErrUnauthorized    = fmt.Errorf("unauthorized")
	ErrNotFound        = fmt.Errorf("not found")
	ErrForbidden       = fmt.Errorf("cross-tenant access denied")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrOperationFailed = fmt.Errorf("operation failed")
)

// OperationError is the only error an operation returns to its caller.
// Message is the fixed, caller-visible text; Cause keeps the specific
// failure for logging and errors.Is checks.
type OperationError struct {
	Message string
	Cause   error
}

// Failed builds the OperationError for action, e.g. "update company profile".
func Failed(action string, cause error) *OperationError {
	return &OperationError{
		Message: fmt.Sprintf("Failed to %s", action),
		Cause:   cause,
	}
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Is reports every OperationError as ErrOperationFailed.
func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}
