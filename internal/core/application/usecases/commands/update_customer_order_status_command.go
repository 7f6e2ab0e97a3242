package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrUpdateCustomerOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateCustomerOrderStatusCommand must be created via NewUpdateCustomerOrderStatusCommand constructor",
)

type UpdateCustomerOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  customerorder.Status

	guard guard.ConstructorGuard
}

// NewUpdateCustomerOrderStatusCommand parses status in any letter case.
func NewUpdateCustomerOrderStatusCommand(orderID kernel.UUID, status string) (UpdateCustomerOrderStatusCommand, error) {
	parsed, statusErr := customerorder.ParseStatus(status)
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdateCustomerOrderStatusCommand{}, err
	}

	return UpdateCustomerOrderStatusCommand{
		orderID: orderID,
		status:  parsed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCustomerOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerOrderStatusCommandIsNotConstructed)
}

func (c UpdateCustomerOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateCustomerOrderStatusCommand) Status() customerorder.Status {
	return c.status
}
