package warehouseorder

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
)

// Status is the lifecycle state of a warehouse order.
type Status string

const (
	Pending    = Status(statemachine.Pending)
	Processing = Status(statemachine.Processing)
	Fulfilled  = Status(statemachine.Fulfilled)
	Rejected   = Status(statemachine.Rejected)
	Cancelled  = Status(statemachine.Cancelled)
)

// ParseStatus converts case-insensitive input into a warehouse order Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate accepts PENDING, PROCESSING, FULFILLED, REJECTED and CANCELLED.
func (s Status) Validate() error {
	switch s {
	case Pending, Processing, Fulfilled, Rejected, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a warehouse order status", string(s)))
	}
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return statemachine.IsTerminal(statemachine.WarehouseOrder, statemachine.State(s))
}

// TransitionTo returns to when the warehouse order table allows s -> to.
// PROCESSING -> PROCESSING is allowed so that partial fulfilment can be recorded
// repeatedly.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := statemachine.Validate(statemachine.WarehouseOrder, statemachine.State(s), statemachine.State(to)); err != nil {
		return s, err
	}
	return to, nil
}
