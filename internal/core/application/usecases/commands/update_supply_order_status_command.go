package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/pkg/guard"
)

var ErrUpdateSupplyOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateSupplyOrderStatusCommand must be created via NewUpdateSupplyOrderStatusCommand constructor",
)

type UpdateSupplyOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  supplyorder.Status
	reason  string

	guard guard.ConstructorGuard
}

func NewUpdateSupplyOrderStatusCommand(orderID kernel.UUID, status, reason string) (UpdateSupplyOrderStatusCommand, error) {
	parsed, statusErr := supplyorder.ParseStatus(status)
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdateSupplyOrderStatusCommand{}, err
	}

	return UpdateSupplyOrderStatusCommand{
		orderID: orderID,
		status:  parsed,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateSupplyOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSupplyOrderStatusCommandIsNotConstructed)
}

func (c UpdateSupplyOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateSupplyOrderStatusCommand) Status() supplyorder.Status {
	return c.status
}

func (c UpdateSupplyOrderStatusCommand) Reason() string {
	return c.reason
}
