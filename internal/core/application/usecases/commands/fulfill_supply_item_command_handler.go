package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/ports"
)

// FulfillSupplyItemCommandHandler caps the supplied quantity at the requested
// one and moves the order to FULFILLED once every part is supplied.
type FulfillSupplyItemCommandHandler struct {
	uowFactory SupplyOrderUoWFactory
	clock      ports.Clock
}

func NewFulfillSupplyItemCommandHandler(uowFactory SupplyOrderUoWFactory, clock ports.Clock) FulfillSupplyItemCommandHandler {
	return FulfillSupplyItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *FulfillSupplyItemCommandHandler) Handle(
	ctx context.Context,
	cmd FulfillSupplyItemCommand,
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

	if err = order.FulfillItem(cmd.PartID(), cmd.Quantity(), h.clock.Now()); err != nil {
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
