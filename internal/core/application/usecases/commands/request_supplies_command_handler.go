package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/ports"
)

type RequestSuppliesCommandHandler struct {
	uowFactory ControlOrderUoWFactory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
}

func NewRequestSuppliesCommandHandler(
	uowFactory ControlOrderUoWFactory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
) RequestSuppliesCommandHandler {
	return RequestSuppliesCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clock:      clock,
	}
}

func (h *RequestSuppliesCommandHandler) Handle(
	ctx context.Context,
	cmd RequestSuppliesCommand,
) (*supplyorder.SupplyOrder, error) {
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

	control, err := uow.ControlOrderRepository().Get(ctx, cmd.ControlOrderID())
	if err != nil {
		return nil, err
	}

	create, err := NewCreateSupplyOrderCommand(
		control.ID(),
		control.Type(),
		control.AssignedWorkstationID(),
		control.Priority(),
		cmd.NeededBy(),
		cmd.Lines(),
		cmd.Notes(),
	)
	if err != nil {
		return nil, err
	}

	order, err := newSupplyOrder(ctx, h.sequence, create, h.clock)
	if err != nil {
		return nil, err
	}

	if err = uow.SupplyOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
