package supplyorder

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
)

type Status string

const (
	Pending    = Status(statemachine.Pending)
	InProgress = Status(statemachine.InProgress)
	Fulfilled  = Status(statemachine.Fulfilled)
	Rejected   = Status(statemachine.Rejected)
	Cancelled  = Status(statemachine.Cancelled)
)

// ParseStatus converts case-insensitive input into a supply order Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate accepts PENDING, IN_PROGRESS, FULFILLED, REJECTED and CANCELLED.
func (s Status) Validate() error {
	switch s {
	case Pending, InProgress, Fulfilled, Rejected, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a supply order status", string(s)))
	}
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}

// TransitionTo returns to when the supply order table allows s -> to, otherwise s and the error.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := statemachine.Validate(statemachine.SupplyOrder, statemachine.State(s), statemachine.State(to)); err != nil {
		return s, err
	}
	return to, nil
}
