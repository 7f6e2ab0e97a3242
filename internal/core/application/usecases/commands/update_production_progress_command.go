package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrUpdateProductionProgressCommandIsNotConstructed = errors.New(
	"UpdateProductionProgressCommand must be created via NewUpdateProductionProgressCommand constructor",
)

// UpdateProductionProgressCommand pulls the scheduler status of a production order.
type UpdateProductionProgressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateProductionProgressCommand(orderID kernel.UUID) (UpdateProductionProgressCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateProductionProgressCommand{}, err
	}

	return UpdateProductionProgressCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProductionProgressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductionProgressCommandIsNotConstructed)
}

func (c UpdateProductionProgressCommand) OrderID() kernel.UUID {
	return c.orderID
}
