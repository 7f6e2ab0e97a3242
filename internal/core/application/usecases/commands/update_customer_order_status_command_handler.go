package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/ports"
)

// UpdateCustomerOrderStatusCommandHandler applies a status change validated by
// the customer order transition table.
type UpdateCustomerOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewUpdateCustomerOrderStatusCommandHandler(uowFactory UoWFactory, clock ports.Clock) UpdateCustomerOrderStatusCommandHandler {
	return UpdateCustomerOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UpdateCustomerOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCustomerOrderStatusCommand,
) (*customerorder.CustomerOrder, error) {
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

	repo := uow.CustomerOrderRepository()
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
