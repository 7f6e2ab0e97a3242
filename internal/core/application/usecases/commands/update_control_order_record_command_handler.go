package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/ports"
)

// UpdateControlOrderRecordCommandHandler stores operator notes, defect counts
// and shipping notes. Shipping notes are refused on production control orders.
type UpdateControlOrderRecordCommandHandler struct {
	uowFactory ControlOrderUoWFactory
	clock      ports.Clock
}

func NewUpdateControlOrderRecordCommandHandler(
	uowFactory ControlOrderUoWFactory,
	clock ports.Clock,
) UpdateControlOrderRecordCommandHandler {
	return UpdateControlOrderRecordCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UpdateControlOrderRecordCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateControlOrderRecordCommand,
) (*controlorder.ControlOrder, error) {
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

	repo := uow.ControlOrderRepository()
	order, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if notes := cmd.ShippingNotes(); notes != nil {
		if err = order.UpdateShippingNotes(*notes, now); err != nil {
			return nil, err
		}
	}
	if notes := cmd.OperatorNotes(); notes != nil {
		order.UpdateOperatorNotes(*notes, now)
	}
	if d := cmd.Defects(); d != nil {
		order.UpdateDefects(d.Found, d.Reworked, d.ReworkRequired, now)
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
