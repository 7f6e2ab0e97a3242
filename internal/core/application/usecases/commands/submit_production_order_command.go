package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrSubmitProductionOrderCommandIsNotConstructed = errors.New(
	"SubmitProductionOrderCommand must be created via NewSubmitProductionOrderCommand constructor",
)

// SubmitProductionOrderCommand hands a production order to the external scheduler.
type SubmitProductionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSubmitProductionOrderCommand(orderID kernel.UUID) (SubmitProductionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SubmitProductionOrderCommand{}, err
	}

	return SubmitProductionOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProductionOrderCommandIsNotConstructed)
}

func (c SubmitProductionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
