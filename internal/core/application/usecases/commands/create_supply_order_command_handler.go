package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/ports"
)

// CreateSupplyOrderCommandHandler numbers (SUP-0001) and stores a PENDING
// supply order addressed to the supply warehouse.
type CreateSupplyOrderCommandHandler struct {
	uowFactory SupplyOrderUoWFactory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
}

func NewCreateSupplyOrderCommandHandler(
	uowFactory SupplyOrderUoWFactory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
) CreateSupplyOrderCommandHandler {
	return CreateSupplyOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clock:      clock,
	}
}

func (h *CreateSupplyOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateSupplyOrderCommand,
) (*supplyorder.SupplyOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := newSupplyOrder(ctx, h.sequence, cmd, h.clock)
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

	if err = uow.SupplyOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}

func newSupplyOrder(
	ctx context.Context,
	sequence ports.SequenceGenerator,
	cmd CreateSupplyOrderCommand,
	clock ports.Clock,
) (*supplyorder.SupplyOrder, error) {
	number, err := nextNumber(ctx, sequence, ports.SupplyOrderSeries, supplyOrderNumberFormat)
	if err != nil {
		return nil, err
	}

	return supplyorder.NewSupplyOrder(
		kernel.NewUUID(),
		number,
		cmd.SourceControlOrderID(),
		cmd.SourceType(),
		cmd.RequestingWorkstationID(),
		cmd.Priority(),
		cmd.NeededBy(),
		cmd.Items(),
		cmd.Notes(),
		clock.Now(),
	)
}
