package commands

import (
	"context"
	"errors"

	"manufacturing/internal/pkg/errs"
)

var ErrCustomerOrderIsReferenced = errors.New("customer order is referenced by a warehouse order")

// DeleteCustomerOrderCommandHandler removes a customer order that no warehouse
// order points at.
type DeleteCustomerOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteCustomerOrderCommandHandler(uowFactory UoWFactory) DeleteCustomerOrderCommandHandler {
	return DeleteCustomerOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DeleteCustomerOrderCommandHandler) Handle(ctx context.Context, cmd DeleteCustomerOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerOrderRepository()
	if _, err := repo.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	referenced, err := uow.WarehouseOrderRepository().ExistsForCustomerOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if referenced {
		return errs.NewValueIsInvalidErrorWithCause("customerOrderId", ErrCustomerOrderIsReferenced)
	}

	if err = repo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
