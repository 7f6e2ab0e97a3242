package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrFulfillSupplyItemCommandIsNotConstructed = errors.New(
	"FulfillSupplyItemCommand must be created via NewFulfillSupplyItemCommand constructor",
)

// FulfillSupplyItemCommand records how much of one part was handed over.
type FulfillSupplyItemCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	partID   int64
	quantity int

	guard guard.ConstructorGuard
}

func NewFulfillSupplyItemCommand(orderID kernel.UUID, partID int64, quantity int) (FulfillSupplyItemCommand, error) {
	var partErr, quantityErr error
	if partID <= 0 {
		partErr = errs.NewValueIsRequiredError("partId")
	}
	if quantity < 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("suppliedQuantity", fmt.Errorf("%d is negative", quantity))
	}
	if err := errors.Join(orderID.Validate(), partErr, quantityErr); err != nil {
		return FulfillSupplyItemCommand{}, err
	}

	return FulfillSupplyItemCommand{
		orderID:  orderID,
		partID:   partID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c FulfillSupplyItemCommand) Validate() error {
	return c.guard.Validate(ErrFulfillSupplyItemCommandIsNotConstructed)
}

func (c FulfillSupplyItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c FulfillSupplyItemCommand) PartID() int64 {
	return c.partID
}

func (c FulfillSupplyItemCommand) Quantity() int {
	return c.quantity
}
