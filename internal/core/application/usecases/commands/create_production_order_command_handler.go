package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
)

type CreateProductionOrderCommandHandler struct {
	uowFactory ProductionOrderUoWFactory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
}

func NewCreateProductionOrderCommandHandler(
	uowFactory ProductionOrderUoWFactory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
) CreateProductionOrderCommandHandler {
	return CreateProductionOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clock:      clock,
	}
}

func (h *CreateProductionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateProductionOrderCommand,
) (*productionorder.ProductionOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	number, err := nextNumber(ctx, h.sequence, ports.ProductionOrderSeries, productionOrderNumberFormat)
	if err != nil {
		return nil, err
	}

	order, err := productionorder.NewProductionOrder(
		kernel.NewUUID(),
		number,
		cmd.CustomerOrderID(),
		cmd.WarehouseOrderID(),
		cmd.Priority(),
		cmd.DueDate(),
		cmd.CreatedBy(),
		cmd.AssignedTo(),
		cmd.Notes(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductionOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
