package errs

import (
	"errors"
	"fmt"
)

// ErrSchedulerIntegration is the sentinel wrapped by every SchedulerIntegrationError.
var ErrSchedulerIntegration = errors.New("scheduler integration failed")

// SchedulerIntegrationError reports a failed call to the external scheduler:
// a transport failure, a timeout or a non-2xx response.
type SchedulerIntegrationError struct {
	Operation  string
	StatusCode int
	Cause      error
}

func NewSchedulerIntegrationError(operation string, statusCode int) *SchedulerIntegrationError {
	return &SchedulerIntegrationError{
		Operation:  operation,
		StatusCode: statusCode,
	}
}

func NewSchedulerIntegrationErrorWithCause(operation string, cause error) *SchedulerIntegrationError {
	return &SchedulerIntegrationError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *SchedulerIntegrationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrSchedulerIntegration, e.Operation)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status: %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *SchedulerIntegrationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrSchedulerIntegration, e.Cause}
	}
	return []error{ErrSchedulerIntegration}
}
