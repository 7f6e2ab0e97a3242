package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateCustomerOrderCommandIsNotConstructed = errors.New(
	"CreateCustomerOrderCommand must be created via NewCreateCustomerOrderCommand constructor",
)

// CustomerOrderLine is one requested item of a new customer order.
type CustomerOrderLine struct {
	ItemType string
	ItemID   int64
	Quantity int
	Notes    string
}

// CreateCustomerOrderCommand registers what a workstation ordered.
//
// Example:
//
//	cmd, err := NewCreateCustomerOrderCommand(7, []CustomerOrderLine{
//	    {ItemType: "PRODUCT_VARIANT", ItemID: 1, Quantity: 10},
//	}, "")
//	order, err := handler.Handle(ctx, cmd)
type CreateCustomerOrderCommand struct { //nolint:recvcheck //using for validation
	workstationID kernel.WorkstationID
	items         []*customerorder.Item
	notes         string

	guard guard.ConstructorGuard
}

func NewCreateCustomerOrderCommand(
	workstationID kernel.WorkstationID,
	lines []CustomerOrderLine,
	notes string,
) (CreateCustomerOrderCommand, error) {
	cmd := CreateCustomerOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		workstationID.Validate("workstationId"),
		cmd.setItems(lines),
	); err != nil {
		return CreateCustomerOrderCommand{}, err
	}

	cmd.workstationID = workstationID
	return cmd, nil
}

func (c CreateCustomerOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerOrderCommandIsNotConstructed)
}

func (c CreateCustomerOrderCommand) WorkstationID() kernel.WorkstationID {
	return c.workstationID
}

func (c CreateCustomerOrderCommand) Items() []*customerorder.Item {
	return c.items
}

func (c CreateCustomerOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateCustomerOrderCommand) setItems(lines []CustomerOrderLine) error {
	if len(lines) == 0 {
		return customerorder.ErrItemsAreRequired
	}

	items := make([]*customerorder.Item, 0, len(lines))
	for i, line := range lines {
		item, err := customerorder.NewItem(line.ItemType, line.ItemID, line.Quantity, line.Notes)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
		items = append(items, item)
	}

	c.items = items
	return nil
}
