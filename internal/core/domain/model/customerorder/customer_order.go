package customerorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// AggregateType names customer orders in domain events.
const AggregateType = "customer_order"

var (
	ErrCustomerOrderIsNotConstructed = errors.New("CustomerOrder must be created via NewCustomerOrder constructor")
	ErrItemsAreRequired              = errs.NewValueIsRequiredError("items")
)

// CustomerOrder is the top-level intake of the factory: what a workstation
// (a shop front or an internal consumer) asked for.
//
// Business rules:
//   - Order number is unique and immutable
//   - At least one line item is required
//   - Status moves only through the customer order transition table
//   - Warehouse fulfillment closes the order by moving it to COMPLETED
type CustomerOrder struct {
	id            kernel.UUID
	number        string
	workstationID kernel.WorkstationID
	status        Status
	items         []*Item
	notes         string
	orderDate     time.Time
	createdAt     time.Time
	updatedAt     time.Time
	events        kernel.EventLog
	guard         guard.ConstructorGuard
}

// NewCustomerOrder creates a PENDING customer order dated now.
//
// Example:
//
//	item, _ := customerorder.NewItem("PRODUCT_VARIANT", 1, 10, "")
//	order, err := customerorder.NewCustomerOrder(kernel.NewUUID(), "ORD-000001", 7, []*customerorder.Item{item}, "", now)
func NewCustomerOrder(
	id kernel.UUID,
	number string,
	workstationID kernel.WorkstationID,
	items []*Item,
	notes string,
	now time.Time,
) (*CustomerOrder, error) {
	return RestoreCustomerOrder(id, number, workstationID, Pending, items, notes, now, now, now)
}

// RestoreCustomerOrder rebuilds a customer order from storage. It applies the
// same validation as NewCustomerOrder but accepts any valid status.
func RestoreCustomerOrder(
	id kernel.UUID,
	number string,
	workstationID kernel.WorkstationID,
	status Status,
	items []*Item,
	notes string,
	orderDate, createdAt, updatedAt time.Time,
) (*CustomerOrder, error) {
	order := &CustomerOrder{
		notes:     notes,
		orderDate: orderDate,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		workstationID.Validate("workstationId"),
		status.Validate(),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.workstationID = workstationID
	order.status = status
	return order, nil
}

// Validate reports ErrCustomerOrderIsNotConstructed for orders built outside the constructors.
func (o *CustomerOrder) Validate() error {
	if o == nil {
		return ErrCustomerOrderIsNotConstructed
	}
	return o.guard.Validate(ErrCustomerOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *CustomerOrder) ID() kernel.UUID {
	return o.id
}

// Number returns the ORD- prefixed order number.
func (o *CustomerOrder) Number() string {
	return o.number
}

// WorkstationID is the workstation that placed the order.
func (o *CustomerOrder) WorkstationID() kernel.WorkstationID {
	return o.workstationID
}

// Status returns the current lifecycle status.
func (o *CustomerOrder) Status() Status {
	return o.status
}

// Items returns a copy of the line item slice; the items themselves are immutable.
func (o *CustomerOrder) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// Notes returns the free-form notes.
func (o *CustomerOrder) Notes() string {
	return o.notes
}

// OrderDate returns the date the order was placed.
func (o *CustomerOrder) OrderDate() time.Time {
	return o.orderDate
}

// CreatedAt returns the creation time.
func (o *CustomerOrder) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last change.
func (o *CustomerOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to status if the transition table allows it and
// records a StatusChanged event.
func (o *CustomerOrder) ChangeStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
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

// StartProcessing marks the order as handed over to a warehouse.
func (o *CustomerOrder) StartProcessing(now time.Time) error {
	return o.ChangeStatus(Processing, now)
}

// Complete closes the order and appends note to its notes.
func (o *CustomerOrder) Complete(note string, now time.Time) error {
	if err := o.ChangeStatus(Completed, now); err != nil {
		return err
	}
	o.AppendNote(note)
	return nil
}

// Cancel moves the order to CANCELLED.
//
// Returns:
//   - nil on success
//   - *errs.IllegalTransitionError when the order is already COMPLETED or CANCELLED
func (o *CustomerOrder) Cancel(now time.Time) error {
	return o.ChangeStatus(Cancelled, now)
}

// AppendNote adds a line to the free-form notes.
func (o *CustomerOrder) AppendNote(note string) {
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
func (o *CustomerOrder) DomainEvents() []kernel.DomainEvent {
	return o.events.Events()
}

// ClearDomainEvents drops recorded events once they have been published.
func (o *CustomerOrder) ClearDomainEvents() {
	o.events.Clear()
}

func (o *CustomerOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *CustomerOrder) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *CustomerOrder) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = append([]*Item(nil), items...)
	return nil
}
