package warehouseorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

const AggregateType = "warehouse_order"

// Notes appended by the fulfillment workflow.
const (
	PartialFulfillmentNote = "Partial fulfillment completed"
)

var (
	ErrWarehouseOrderIsNotConstructed = errors.New("WarehouseOrder must be created via NewWarehouseOrder constructor")
	ErrItemsAreRequired               = errs.NewValueIsRequiredError("items")
	ErrItemsNotFullyFulfilled         = errors.New("every item must be fully fulfilled")
)

// WarehouseOrder asks the fulfilling workstation to ship a customer order from stock.
type WarehouseOrder struct {
	id                      kernel.UUID
	number                  string
	customerOrderID         kernel.UUID
	requestingWorkstationID kernel.WorkstationID
	fulfillingWorkstationID kernel.WorkstationID
	status                  Status
	items                   []*Item
	triggerScenario         string
	notes                   string
	orderDate               time.Time
	createdAt               time.Time
	updatedAt               time.Time
	events                  kernel.EventLog
	guard                   guard.ConstructorGuard
}

// NewWarehouseOrder creates a PENDING warehouse order dated now.
func NewWarehouseOrder(
	id kernel.UUID,
	number string,
	customerOrderID kernel.UUID,
	requestingWorkstationID, fulfillingWorkstationID kernel.WorkstationID,
	items []*Item,
	triggerScenario, notes string,
	now time.Time,
) (*WarehouseOrder, error) {
	return RestoreWarehouseOrder(
		id, number, customerOrderID, requestingWorkstationID, fulfillingWorkstationID,
		Pending, items, triggerScenario, notes, now, now, now,
	)
}

// RestoreWarehouseOrder rebuilds a warehouse order and its items from
// persisted state.
//
// Parameters:
//   - status: the persisted status, validated against the known statuses
//   - items: must be non-empty and individually constructed
//
// Returns:
//   - *WarehouseOrder: the restored order, with no recorded events
//   - error: joined validation errors for every invalid field
func RestoreWarehouseOrder(
	id kernel.UUID,
	number string,
	customerOrderID kernel.UUID,
	requestingWorkstationID, fulfillingWorkstationID kernel.WorkstationID,
	status Status,
	items []*Item,
	triggerScenario, notes string,
	orderDate, createdAt, updatedAt time.Time,
) (*WarehouseOrder, error) {
	if err := errors.Join(
		id.Validate(),
		validateNumber(number),
		customerOrderID.Validate(),
		requestingWorkstationID.Validate("requestingWorkstationId"),
		fulfillingWorkstationID.Validate("fulfillingWorkstationId"),
		status.Validate(),
		validateItems(items),
	); err != nil {
		return nil, err
	}

	order := &WarehouseOrder{
		id:                      id,
		number:                  number,
		customerOrderID:         customerOrderID,
		requestingWorkstationID: requestingWorkstationID,
		fulfillingWorkstationID: fulfillingWorkstationID,
		status:                  status,
		items:                   append([]*Item(nil), items...),
		triggerScenario:         triggerScenario,
		notes:                   notes,
		orderDate:               orderDate,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
		guard:                   guard.NewConstructorGuard(),
	}
	if status == Fulfilled && !order.IsFullyFulfilled() {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", ErrItemsNotFullyFulfilled)
	}
	return order, nil
}

// Validate reports ErrWarehouseOrderIsNotConstructed for orders built outside the constructors.
func (o *WarehouseOrder) Validate() error {
	if o == nil {
		return ErrWarehouseOrderIsNotConstructed
	}
	return o.guard.Validate(ErrWarehouseOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *WarehouseOrder) ID() kernel.UUID {
	return o.id
}

// Number returns the WO- prefixed order number.
func (o *WarehouseOrder) Number() string {
	return o.number
}

// CustomerOrderID returns the customer order that triggered this request.
func (o *WarehouseOrder) CustomerOrderID() kernel.UUID {
	return o.customerOrderID
}

// RequestingWorkstationID returns the workstation that asked for the items.
func (o *WarehouseOrder) RequestingWorkstationID() kernel.WorkstationID {
	return o.requestingWorkstationID
}

// FulfillingWorkstationID is the warehouse workstation expected to ship the items.
func (o *WarehouseOrder) FulfillingWorkstationID() kernel.WorkstationID {
	return o.fulfillingWorkstationID
}

// Status returns the current lifecycle status.
func (o *WarehouseOrder) Status() Status {
	return o.status
}

// Items returns a copy of the item slice. The items themselves are shared.
func (o *WarehouseOrder) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// TriggerScenario names the rule that created the order.
func (o *WarehouseOrder) TriggerScenario() string {
	return o.triggerScenario
}

// Notes returns the free-form notes.
func (o *WarehouseOrder) Notes() string {
	return o.notes
}

// OrderDate returns the date the order was placed.
func (o *WarehouseOrder) OrderDate() time.Time {
	return o.orderDate
}

// CreatedAt returns the creation time.
func (o *WarehouseOrder) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last change.
func (o *WarehouseOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsFullyFulfilled reports whether every line has fulfilled == requested.
func (o *WarehouseOrder) IsFullyFulfilled() bool {
	for _, item := range o.items {
		if !item.IsFullyFulfilled() {
			return false
		}
	}
	return true
}

// FulfillItem records that the whole requested quantity of the line was
// debited from the fulfilling workstation.
func (o *WarehouseOrder) FulfillItem(itemID kernel.UUID, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s order cannot be fulfilled", o.status))
	}
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			if err := item.Fulfill(item.RequestedQuantity()); err != nil {
				return err
			}
			o.updatedAt = now
			return nil
		}
	}
	return errs.NewObjectNotFoundError("itemId", itemID)
}

// ChangeStatus validates the transition and records a StatusChanged event.
// FULFILLED is refused while any line is short.
func (o *WarehouseOrder) ChangeStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Fulfilled && !o.IsFullyFulfilled() {
		return errs.NewValueIsInvalidErrorWithCause("status", ErrItemsNotFullyFulfilled)
	}

	from := o.status
	next, err := o.status.TransitionTo(status)
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = now
	o.events.Record(kernel.StatusChanged{
		OrderType:   AggregateType,
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        from.String(),
		To:          next.String(),
		At:          now,
	})
	return nil
}

// MarkPartiallyFulfilled moves the order to PROCESSING after some lines could
// not be served from stock.
func (o *WarehouseOrder) MarkPartiallyFulfilled(now time.Time) error {
	if err := o.ChangeStatus(Processing, now); err != nil {
		return err
	}
	o.AppendNote(PartialFulfillmentNote)
	return nil
}

// FulfilledNote is appended to the source customer order on closure.
func (o *WarehouseOrder) FulfilledNote() string {
	return fmt.Sprintf("Warehouse order %s fulfilled - order completed", o.number)
}

// AppendNote adds note on a new line. Blank notes are ignored.
func (o *WarehouseOrder) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if o.notes == "" {
		o.notes = note
		return
	}
	o.notes = o.notes + "\n" + note
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *WarehouseOrder) DomainEvents() []kernel.DomainEvent {
	return o.events.Events()
}

// ClearDomainEvents drops recorded events once they have been published.
func (o *WarehouseOrder) ClearDomainEvents() {
	o.events.Clear()
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
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
