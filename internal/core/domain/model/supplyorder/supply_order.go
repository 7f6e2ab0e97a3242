package supplyorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

const AggregateType = "supply_order"

var (
	ErrSupplyOrderIsNotConstructed = errors.New("SupplyOrder must be created via NewSupplyOrder constructor")
	ErrItemsAreRequired            = errs.NewValueIsRequiredError("items")
	ErrItemsNotFullySupplied       = errors.New("every item must be fully supplied")
)

// Snapshot carries every persisted field of a supply order.
type Snapshot struct {
	ID                      kernel.UUID
	Number                  string
	SourceControlOrderID    kernel.UUID
	SourceType              controlorder.Type
	RequestingWorkstationID kernel.WorkstationID
	SupplyWorkstationID     kernel.WorkstationID
	Status                  Status
	Items                   []*Item
	Priority                kernel.Priority
	NeededBy                *time.Time
	FulfilledAt             *time.Time
	RejectedAt              *time.Time
	CancelledAt             *time.Time
	Notes                   string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// SupplyOrder is a parts request served by the supply warehouse.
type SupplyOrder struct {
	s      Snapshot
	events kernel.EventLog
	guard  guard.ConstructorGuard
}

// NewSupplyOrder creates a PENDING supply order addressed to the supply warehouse.
func NewSupplyOrder(
	id kernel.UUID,
	number string,
	sourceControlOrderID kernel.UUID,
	sourceType controlorder.Type,
	requestingWorkstationID kernel.WorkstationID,
	priority kernel.Priority,
	neededBy *time.Time,
	items []*Item,
	notes string,
	now time.Time,
) (*SupplyOrder, error) {
	return RestoreSupplyOrder(Snapshot{
		ID:                      id,
		Number:                  number,
		SourceControlOrderID:    sourceControlOrderID,
		SourceType:              sourceType,
		RequestingWorkstationID: requestingWorkstationID,
		SupplyWorkstationID:     kernel.SupplyWarehouseWorkstation,
		Status:                  Pending,
		Items:                   items,
		Priority:                priority,
		NeededBy:                neededBy,
		Notes:                   notes,
		CreatedAt:               now,
		UpdatedAt:               now,
	})
}

// RestoreSupplyOrder rebuilds a supply order from persisted state.
//
// Returns:
//   - *SupplyOrder: the restored order, with no recorded events
//   - error: joined validation errors for every invalid field
func RestoreSupplyOrder(s Snapshot) (*SupplyOrder, error) {
	if err := errors.Join(
		s.ID.Validate(),
		validateNumber(s.Number),
		s.SourceControlOrderID.Validate(),
		s.SourceType.Validate(),
		s.RequestingWorkstationID.Validate("requestingWorkstationId"),
		s.SupplyWorkstationID.Validate("supplyWarehouseWorkstationId"),
		s.Status.Validate(),
		s.Priority.Validate(),
		validateItems(s.Items),
	); err != nil {
		return nil, err
	}

	s.Items = append([]*Item(nil), s.Items...)
	return &SupplyOrder{
		s:     s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrSupplyOrderIsNotConstructed for orders built outside the constructors.
func (o *SupplyOrder) Validate() error {
	if o == nil {
		return ErrSupplyOrderIsNotConstructed
	}
	return o.guard.Validate(ErrSupplyOrderIsNotConstructed)
}

// Snapshot returns the persisted state. Items are shared with the aggregate.
func (o *SupplyOrder) Snapshot() Snapshot {
	s := o.s
	s.Items = o.Items()
	return s
}

// ID returns the order's unique identifier.
func (o *SupplyOrder) ID() kernel.UUID {
	return o.s.ID
}

// Number returns the SUP- prefixed order number.
func (o *SupplyOrder) Number() string {
	return o.s.Number
}

// SourceControlOrderID returns the control order that requested the parts.
func (o *SupplyOrder) SourceControlOrderID() kernel.UUID {
	return o.s.SourceControlOrderID
}

// SourceType tells whether the source was a production or an assembly control order.
func (o *SupplyOrder) SourceType() controlorder.Type {
	return o.s.SourceType
}

// RequestingWorkstationID returns the workstation that asked for the items.
func (o *SupplyOrder) RequestingWorkstationID() kernel.WorkstationID {
	return o.s.RequestingWorkstationID
}

// SupplyWorkstationID is the parts supply warehouse workstation.
func (o *SupplyOrder) SupplyWorkstationID() kernel.WorkstationID {
	return o.s.SupplyWorkstationID
}

// Status returns the current lifecycle status.
func (o *SupplyOrder) Status() Status {
	return o.s.Status
}

// Items returns a copy of the item slice.
func (o *SupplyOrder) Items() []*Item {
	out := make([]*Item, len(o.s.Items))
	copy(out, o.s.Items)
	return out
}

// Priority returns the order priority.
func (o *SupplyOrder) Priority() kernel.Priority {
	return o.s.Priority
}

// NeededBy is nil when the requester gave no deadline.
func (o *SupplyOrder) NeededBy() *time.Time {
	return o.s.NeededBy
}

// FulfilledAt is set once the order reaches FULFILLED.
func (o *SupplyOrder) FulfilledAt() *time.Time {
	return o.s.FulfilledAt
}

// RejectedAt is set once the order is rejected.
func (o *SupplyOrder) RejectedAt() *time.Time {
	return o.s.RejectedAt
}

// CancelledAt is set once the order is cancelled.
func (o *SupplyOrder) CancelledAt() *time.Time {
	return o.s.CancelledAt
}

// Notes returns the free-form notes.
func (o *SupplyOrder) Notes() string {
	return o.s.Notes
}

// CreatedAt returns the creation time.
func (o *SupplyOrder) CreatedAt() time.Time {
	return o.s.CreatedAt
}

// UpdatedAt returns the time of the last change.
func (o *SupplyOrder) UpdatedAt() time.Time {
	return o.s.UpdatedAt
}

// ChangeStatus validates the transition, stamps the terminal timestamps and
// appends reason to the notes.
//
// Parameters:
//   - status: the target status, checked against the supply order state table
//   - reason: optional text appended to the notes on its own line
//   - now: the time stamped on the order
//
// Returns an IllegalTransitionError for a transition the table forbids and a
// ValueIsInvalidError wrapping ErrItemsNotFullySupplied when FULFILLED is
// requested while a part is still short.
func (o *SupplyOrder) ChangeStatus(status Status, reason string, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Fulfilled && !o.IsFullySupplied() {
		return errs.NewValueIsInvalidErrorWithCause("status", ErrItemsNotFullySupplied)
	}

	from := o.s.Status
	next, err := from.TransitionTo(status)
	if err != nil {
		return err
	}

	stamp := now
	switch next {
	case Fulfilled:
		o.s.FulfilledAt = &stamp
	case Rejected:
		o.s.RejectedAt = &stamp
	case Cancelled:
		o.s.CancelledAt = &stamp
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		if o.s.Notes == "" {
			o.s.Notes = reason
		} else {
			o.s.Notes = o.s.Notes + "\n" + reason
		}
	}

	o.s.Status = next
	o.s.UpdatedAt = now
	o.events.Record(kernel.StatusChanged{
		OrderType:   AggregateType,
		OrderID:     o.s.ID,
		OrderNumber: o.s.Number,
		From:        from.String(),
		To:          next.String(),
		At:          now,
	})
	return nil
}

// FulfillItem records the supplied quantity of one part, capped at the
// requested quantity. The order becomes FULFILLED once every part is fully
// supplied and IN_PROGRESS otherwise.
func (o *SupplyOrder) FulfillItem(partID int64, suppliedQuantity int, now time.Time) error {
	var target *Item
	for _, item := range o.s.Items {
		if item.PartID() == partID {
			target = item
			break
		}
	}
	if target == nil {
		return errs.NewValueIsInvalidErrorWithCause("partId", fmt.Errorf("part %d is not on supply order %s", partID, o.s.Number))
	}

	next := InProgress
	if o.allSuppliedWith(target, suppliedQuantity) {
		next = Fulfilled
	}
	if _, err := o.s.Status.TransitionTo(next); err != nil {
		return err
	}

	if err := target.supply(suppliedQuantity); err != nil {
		return err
	}
	return o.ChangeStatus(next, "", now)
}

// IsFullySupplied reports whether every part has been supplied in full.
func (o *SupplyOrder) IsFullySupplied() bool {
	for _, item := range o.s.Items {
		if !item.IsFullySupplied() {
			return false
		}
	}
	return true
}

func (o *SupplyOrder) allSuppliedWith(target *Item, quantity int) bool {
	for _, item := range o.s.Items {
		if item == target {
			if quantity < item.RequestedQuantity() {
				return false
			}
			continue
		}
		if !item.IsFullySupplied() {
			return false
		}
	}
	return true
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *SupplyOrder) DomainEvents() []kernel.DomainEvent {
	return o.events.Events()
}

// ClearDomainEvents drops recorded events once they have been published.
func (o *SupplyOrder) ClearDomainEvents() {
	o.events.Clear()
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("supplyOrderNumber")
	}
	return nil
}

func validateItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	return nil
}
