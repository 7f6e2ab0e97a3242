package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
)

type UpdateWarehouseOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewUpdateWarehouseOrderStatusCommandHandler(uowFactory UoWFactory, clock ports.Clock) UpdateWarehouseOrderStatusCommandHandler {
	return UpdateWarehouseOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle changes the status. FULFILLED is refused unless every item is
// fully fulfilled; use FulfillWarehouseOrderCommand to debit stock.
func (h *UpdateWarehouseOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateWarehouseOrderStatusCommand,
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

	repo := uow.WarehouseOrderRepository()
	order, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = order.ChangeStatus(cmd.Status(), h.clock.Now()); err != nil {
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
