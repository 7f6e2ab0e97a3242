package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrDeleteCustomerOrderCommandIsNotConstructed = errors.New(
	"DeleteCustomerOrderCommand must be created via NewDeleteCustomerOrderCommand constructor",
)

type DeleteCustomerOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCustomerOrderCommand(orderID kernel.UUID) (DeleteCustomerOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteCustomerOrderCommand{}, err
	}

	return DeleteCustomerOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteCustomerOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCustomerOrderCommandIsNotConstructed)
}

func (c DeleteCustomerOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
