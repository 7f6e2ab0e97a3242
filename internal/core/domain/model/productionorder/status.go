package productionorder

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
)

// Status is the lifecycle state of a production order.
//
//	CREATED ──► SUBMITTED ──► SCHEDULED ──► IN_PRODUCTION ──► COMPLETED
//
// Any non-terminal status may be CANCELLED.
type Status string

const (
	Created      = Status(statemachine.Created)
	Submitted    = Status(statemachine.Submitted)
	Scheduled    = Status(statemachine.Scheduled)
	InProduction = Status(statemachine.InProduction)
	Completed    = Status(statemachine.Completed)
	Cancelled    = Status(statemachine.Cancelled)
)

// ParseStatus converts case-insensitive input into a production order Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// StatusFromScheduler maps a status reported by the external scheduler onto
// the production order lifecycle. Unrecognised values count as SCHEDULED.
func StatusFromScheduler(s string) Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN_PROGRESS":
		return InProduction
	case "COMPLETED":
		return Completed
	case "FAILED", "CANCELLED":
		return Cancelled
	default:
		return Scheduled
	}
}

// Validate checks that s is one of the six production order statuses.
//
// Returns:
//   - nil for a known status
//   - errs.ValueIsInvalidError naming the offending value otherwise
func (s Status) Validate() error {
	switch s {
	case Created, Submitted, Scheduled, InProduction, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a production order status", string(s)))
	}
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}

// TransitionTo returns to when the production order table allows s -> to.
// On a rejected transition s is returned unchanged together with the error.
//
// Example:
//
//	next, err := Submitted.TransitionTo(Scheduled)
//	if err != nil {
//	    // illegal transition
//	}
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := statemachine.Validate(statemachine.ProductionOrder, statemachine.State(s), statemachine.State(to)); err != nil {
		return s, err
	}
	return to, nil
}
