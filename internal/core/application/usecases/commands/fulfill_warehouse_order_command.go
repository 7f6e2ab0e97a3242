package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrFulfillWarehouseOrderCommandIsNotConstructed = errors.New(
	"FulfillWarehouseOrderCommand must be created via NewFulfillWarehouseOrderCommand constructor",
)

// FulfillWarehouseOrderCommand serves a warehouse order from the stock of its
// fulfilling workstation.
type FulfillWarehouseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewFulfillWarehouseOrderCommand(orderID kernel.UUID) (FulfillWarehouseOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FulfillWarehouseOrderCommand{}, err
	}

	return FulfillWarehouseOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c FulfillWarehouseOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillWarehouseOrderCommandIsNotConstructed)
}

func (c FulfillWarehouseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
