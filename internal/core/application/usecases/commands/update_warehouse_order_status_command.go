package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/pkg/guard"
)

var ErrUpdateWarehouseOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateWarehouseOrderStatusCommand must be created via NewUpdateWarehouseOrderStatusCommand constructor",
)

type UpdateWarehouseOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  warehouseorder.Status

	guard guard.ConstructorGuard
}

func NewUpdateWarehouseOrderStatusCommand(orderID kernel.UUID, status string) (UpdateWarehouseOrderStatusCommand, error) {
	parsed, statusErr := warehouseorder.ParseStatus(status)
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdateWarehouseOrderStatusCommand{}, err
	}

	return UpdateWarehouseOrderStatusCommand{
		orderID: orderID,
		status:  parsed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateWarehouseOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWarehouseOrderStatusCommandIsNotConstructed)
}

func (c UpdateWarehouseOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateWarehouseOrderStatusCommand) Status() warehouseorder.Status {
	return c.status
}
