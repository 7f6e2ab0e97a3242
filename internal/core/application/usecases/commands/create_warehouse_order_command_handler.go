package commands

import (
	"context"
	"fmt"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

// CreateWarehouseOrderCommandHandler copies the lines of a customer order into
// a new warehouse order and moves the customer order to PROCESSING.
type CreateWarehouseOrderCommandHandler struct {
	uowFactory UoWFactory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
}

func NewCreateWarehouseOrderCommandHandler(
	uowFactory UoWFactory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
) CreateWarehouseOrderCommandHandler {
	return CreateWarehouseOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clock:      clock,
	}
}

func (h *CreateWarehouseOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateWarehouseOrderCommand,
) (*warehouseorder.WarehouseOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerOrderRepository()
	customer, err := customerRepo.Get(ctx, cmd.CustomerOrderID())
	if err != nil {
		return nil, err
	}

	items, err := warehouseItems(customer)
	if err != nil {
		return nil, err
	}

	number, err := nextNumber(ctx, h.sequence, ports.WarehouseOrderSeries, warehouseOrderNumberFormat)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	order, err := warehouseorder.NewWarehouseOrder(
		kernel.NewUUID(),
		number,
		customer.ID(),
		customer.WorkstationID(),
		cmd.FulfillingWorkstationID(),
		items,
		cmd.TriggerScenario(),
		cmd.Notes(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if customer.Status() == customerorder.Pending {
		if err = customer.StartProcessing(now); err != nil {
			return nil, err
		}
		if err = customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
	}

	if err = uow.WarehouseOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}

func warehouseItems(customer *customerorder.CustomerOrder) ([]*warehouseorder.Item, error) {
	lines := customer.Items()
	items := make([]*warehouseorder.Item, 0, len(lines))
	for i, line := range lines {
		item, err := warehouseorder.NewItem(
			line.ItemID(),
			fmt.Sprintf("%s-%d", line.ItemType(), line.ItemID()),
			line.ItemType(),
			line.Quantity(),
		)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
		items = append(items, item)
	}
	return items, nil
}
