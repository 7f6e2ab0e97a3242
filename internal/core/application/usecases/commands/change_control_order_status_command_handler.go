package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/ports"
)

// ChangeControlOrderStatusCommandHandler drives the control order lifecycle.
// Every action is validated against the transition table of the order type.
type ChangeControlOrderStatusCommandHandler struct {
	uowFactory ControlOrderUoWFactory
	clock      ports.Clock
}

func NewChangeControlOrderStatusCommandHandler(
	uowFactory ControlOrderUoWFactory,
	clock ports.Clock,
) ChangeControlOrderStatusCommandHandler {
	return ChangeControlOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *ChangeControlOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeControlOrderStatusCommand,
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

	if err = apply(order, cmd, h.clock.Now()); err != nil {
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

func apply(order *controlorder.ControlOrder, cmd ChangeControlOrderStatusCommand, now time.Time) error {
	switch cmd.Action() {
	case StartControlOrder:
		return order.Start(now)
	case CompleteControlOrder:
		return order.Complete(now)
	case HaltControlOrder:
		return order.Halt(cmd.Reason(), now)
	case ResumeControlOrder:
		return order.Resume(now)
	default:
		return order.Cancel(cmd.Reason(), now)
	}
}
