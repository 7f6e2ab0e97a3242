// Package statemachine decides whether a status change is legal for a given
// order kind. It is pure: no I/O, no clocks, no mutation.
//
// Every order aggregate calls Validate before touching its status field, so the
// tables below are the single source of truth for order lifecycles.
package statemachine

import (
	"fmt"

	"manufacturing/internal/pkg/errs"
)

// Kind selects a transition table.
type Kind string

const (
	Manufacturing Kind = "manufacturing"
	Assembly      Kind = "assembly"
	Control       Kind = "control"
	Supplier      Kind = "supplier"

	CustomerOrder   Kind = "customer"
	WarehouseOrder  Kind = "warehouse"
	ProductionOrder Kind = "production"
	SupplyOrder     Kind = "supply"
)

// State is a status name as persisted and exchanged over the wire.
type State string

const (
	Created           State = "CREATED"
	Assigned          State = "ASSIGNED"
	InProgress        State = "IN_PROGRESS"
	Completed         State = "COMPLETED"
	Halted            State = "HALTED"
	Cancelled         State = "CANCELLED"
	Sent              State = "SENT"
	PartiallyReceived State = "PARTIALLY_RECEIVED"
	Received          State = "RECEIVED"
	Pending           State = "PENDING"
	Processing        State = "PROCESSING"
	Fulfilled         State = "FULFILLED"
	Rejected          State = "REJECTED"
	Submitted         State = "SUBMITTED"
	Scheduled         State = "SCHEDULED"
	InProduction      State = "IN_PRODUCTION"
)

type table map[State][]State

// canonical is shared by manufacturing, assembly and control orders.
var canonical = table{
	Created:    {Assigned, Cancelled},
	Assigned:   {InProgress, Cancelled},
	InProgress: {Completed, Halted},
	Halted:     {InProgress, Cancelled},
	Completed:  {},
	Cancelled:  {},
}

var tables = map[Kind]table{
	Manufacturing: canonical,
	Assembly:      canonical,
	Control:       canonical,
	Supplier: {
		Created:           {Sent, Cancelled},
		Sent:              {PartiallyReceived, Received, Cancelled},
		PartiallyReceived: {PartiallyReceived, Received, Cancelled},
		Received:          {},
		Cancelled:         {},
	},
	CustomerOrder: {
		Pending:    {Processing, Completed, Cancelled},
		Processing: {Completed, Cancelled},
		Completed:  {},
		Cancelled:  {},
	},
	WarehouseOrder: {
		Pending:    {Processing, Fulfilled, Rejected, Cancelled},
		Processing: {Processing, Fulfilled, Rejected, Cancelled},
		Fulfilled:  {},
		Rejected:   {},
		Cancelled:  {},
	},
	ProductionOrder: {
		Created:      {Submitted, Cancelled},
		Submitted:    {Scheduled, InProduction, Completed, Cancelled},
		Scheduled:    {InProduction, Completed, Cancelled},
		InProduction: {Completed, Cancelled},
		Completed:    {},
		Cancelled:    {},
	},
	SupplyOrder: {
		Pending:    {InProgress, Fulfilled, Rejected, Cancelled},
		InProgress: {InProgress, Fulfilled, Rejected, Cancelled},
		Fulfilled:  {},
		Rejected:   {},
		Cancelled:  {},
	},
}

// Validate checks (current → requested) against the table of kind.
//
// Returns:
//   - *errs.UnknownStateError if current has no row in the table
//   - *errs.IllegalTransitionError if requested is not reachable from current in one step
//   - *errs.ValueIsInvalidError if kind has no table at all
//   - nil otherwise
//
// Example:
//
//	if err := statemachine.Validate(statemachine.Control, statemachine.Assigned, statemachine.InProgress); err != nil {
//	    return err
//	}
func Validate(kind Kind, current, requested State) error {
	t, ok := tables[kind]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("no transition table for %q", string(kind)))
	}

	next, ok := t[current]
	if !ok {
		return errs.NewUnknownStateError(string(kind), string(current))
	}

	for _, s := range next {
		if s == requested {
			return nil
		}
	}
	return errs.NewIllegalTransitionError(string(kind), string(current), string(requested))
}

// Next lists the states reachable from current in one step.
func Next(kind Kind, current State) []State {
	next := tables[kind][current]
	out := make([]State, len(next))
	copy(out, next)
	return out
}

// States lists every state that has a row in the table of kind.
func States(kind Kind) []State {
	t := tables[kind]
	out := make([]State, 0, len(t))
	for s := range t {
		out = append(out, s)
	}
	return out
}

// IsTerminal reports whether current has no outgoing transitions.
func IsTerminal(kind Kind, current State) bool {
	next, ok := tables[kind][current]
	return ok && len(next) == 0
}

// String returns the wire representation.
func (k Kind) String() string {
	return string(k)
}

// String returns the wire representation.
func (s State) String() string {
	return string(s)
}
