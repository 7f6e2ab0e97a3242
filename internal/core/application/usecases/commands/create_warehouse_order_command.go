package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateWarehouseOrderCommandIsNotConstructed = errors.New(
	"CreateWarehouseOrderCommand must be created via NewCreateWarehouseOrderCommand constructor",
)

// CreateWarehouseOrderCommand asks a warehouse workstation to serve a customer order.
type CreateWarehouseOrderCommand struct { //nolint:recvcheck //using for validation
	customerOrderID         kernel.UUID
	fulfillingWorkstationID kernel.WorkstationID
	triggerScenario         string
	notes                   string

	guard guard.ConstructorGuard
}

func NewCreateWarehouseOrderCommand(
	customerOrderID kernel.UUID,
	fulfillingWorkstationID kernel.WorkstationID,
	triggerScenario, notes string,
) (CreateWarehouseOrderCommand, error) {
	if err := errors.Join(
		customerOrderID.Validate(),
		fulfillingWorkstationID.Validate("fulfillingWorkstationId"),
	); err != nil {
		return CreateWarehouseOrderCommand{}, err
	}

	return CreateWarehouseOrderCommand{
		customerOrderID:         customerOrderID,
		fulfillingWorkstationID: fulfillingWorkstationID,
		triggerScenario:         triggerScenario,
		notes:                   notes,
		guard:                   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateWarehouseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseOrderCommandIsNotConstructed)
}

func (c CreateWarehouseOrderCommand) CustomerOrderID() kernel.UUID {
	return c.customerOrderID
}

func (c CreateWarehouseOrderCommand) FulfillingWorkstationID() kernel.WorkstationID {
	return c.fulfillingWorkstationID
}

func (c CreateWarehouseOrderCommand) TriggerScenario() string {
	return c.triggerScenario
}

func (c CreateWarehouseOrderCommand) Notes() string {
	return c.notes
}
