package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrCompleteProductionCommandIsNotConstructed = errors.New(
	"CompleteProductionCommand must be created via NewCompleteProductionCommand constructor",
)

type CompleteProductionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteProductionCommand(orderID kernel.UUID) (CompleteProductionCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteProductionCommand{}, err
	}

	return CompleteProductionCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteProductionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteProductionCommandIsNotConstructed)
}

func (c CompleteProductionCommand) OrderID() kernel.UUID {
	return c.orderID
}
