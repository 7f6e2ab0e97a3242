package commands

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCreateProductionOrderCommandIsNotConstructed = errors.New(
	"CreateProductionOrderCommand must be created via NewCreateProductionOrderCommand constructor",
)

// CreateProductionOrderCommand registers a production order by hand. Orders
// raised by stock shortfalls are cascaded by warehouse fulfillment instead.
type CreateProductionOrderCommand struct { //nolint:recvcheck //using for validation
	customerOrderID  kernel.UUID
	warehouseOrderID *kernel.UUID
	priority         kernel.Priority
	dueDate          time.Time
	createdBy        kernel.WorkstationID
	assignedTo       kernel.WorkstationID
	notes            string

	guard guard.ConstructorGuard
}

func NewCreateProductionOrderCommand(
	customerOrderID kernel.UUID,
	warehouseOrderID *kernel.UUID,
	priority kernel.Priority,
	dueDate time.Time,
	createdBy, assignedTo kernel.WorkstationID,
	notes string,
) (CreateProductionOrderCommand, error) {
	var warehouseErr, dueErr error
	if warehouseOrderID != nil {
		warehouseErr = warehouseOrderID.Validate()
	}
	if dueDate.IsZero() {
		dueErr = errs.NewValueIsRequiredError("dueDate")
	}

	if err := errors.Join(
		customerOrderID.Validate(),
		warehouseErr,
		priority.Validate(),
		dueErr,
		createdBy.Validate("createdByWorkstationId"),
		assignedTo.Validate("assignedWorkstationId"),
	); err != nil {
		return CreateProductionOrderCommand{}, err
	}

	return CreateProductionOrderCommand{
		customerOrderID:  customerOrderID,
		warehouseOrderID: warehouseOrderID,
		priority:         priority,
		dueDate:          dueDate,
		createdBy:        createdBy,
		assignedTo:       assignedTo,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductionOrderCommandIsNotConstructed)
}

func (c CreateProductionOrderCommand) CustomerOrderID() kernel.UUID {
	return c.customerOrderID
}

func (c CreateProductionOrderCommand) WarehouseOrderID() *kernel.UUID {
	return c.warehouseOrderID
}

func (c CreateProductionOrderCommand) Priority() kernel.Priority {
	return c.priority
}

func (c CreateProductionOrderCommand) DueDate() time.Time {
	return c.dueDate
}

func (c CreateProductionOrderCommand) CreatedBy() kernel.WorkstationID {
	return c.createdBy
}

func (c CreateProductionOrderCommand) AssignedTo() kernel.WorkstationID {
	return c.assignedTo
}

func (c CreateProductionOrderCommand) Notes() string {
	return c.notes
}
