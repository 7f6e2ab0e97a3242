package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/ports"
)

type UpdateSupplyOrderStatusCommandHandler struct {
	uowFactory SupplyOrderUoWFactory
	clock      ports.Clock
}

func NewUpdateSupplyOrderStatusCommandHandler(uowFactory SupplyOrderUoWFactory, clock ports.Clock) UpdateSupplyOrderStatusCommandHandler {
	return UpdateSupplyOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UpdateSupplyOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateSupplyOrderStatusCommand,
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

	repo := uow.SupplyOrderRepository()
	order, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = order.ChangeStatus(cmd.Status(), cmd.Reason(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
