package customerorder

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
)

// Status is the lifecycle state of a customer order.
//
// Lifecycle:
//
//	PENDING ──► PROCESSING ──► COMPLETED
//	   │  └────────────────────► COMPLETED
//	   └──► CANCELLED ◄── PROCESSING
type Status string

const (
	Pending    = Status(statemachine.Pending)
	Processing = Status(statemachine.Processing)
	Completed  = Status(statemachine.Completed)
	Cancelled  = Status(statemachine.Cancelled)
)

// ParseStatus accepts the wire representation in any letter case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate accepts PENDING, PROCESSING, COMPLETED and CANCELLED.
func (s Status) Validate() error {
	switch s {
	case Pending, Processing, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a customer order status", string(s)))
	}
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}

// TransitionTo returns the requested status if the customer order table allows it.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := statemachine.Validate(statemachine.CustomerOrder, statemachine.State(s), statemachine.State(to)); err != nil {
		return s, err
	}
	return to, nil
}
