package controlorder

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
)

// Status is the lifecycle state of a control order. Control orders are born
// ASSIGNED to a workstation.
type Status string

const (
	Assigned   = Status(statemachine.Assigned)
	InProgress = Status(statemachine.InProgress)
	Completed  = Status(statemachine.Completed)
	Halted     = Status(statemachine.Halted)
	Cancelled  = Status(statemachine.Cancelled)
)

// ParseStatus converts case-insensitive input such as "in_progress" into a Status.
//
// Example:
//
//	status, err := ParseStatus("halted")
//	if err != nil {
//	    // not a control order status
//	}
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate returns ErrValueIsInvalid for anything outside the five control order statuses.
func (s Status) Validate() error {
	switch s {
	case Assigned, InProgress, Completed, Halted, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a control order status", string(s)))
	}
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}
