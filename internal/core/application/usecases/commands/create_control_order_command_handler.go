package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
)

// CreateControlOrderCommandHandler numbers a control order from the series of
// its type (PCO-0001, ACO-0001) and stores it ASSIGNED.
type CreateControlOrderCommandHandler struct {
	uowFactory ControlOrderUoWFactory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
}

func NewCreateControlOrderCommandHandler(
	uowFactory ControlOrderUoWFactory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
) CreateControlOrderCommandHandler {
	return CreateControlOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clock:      clock,
	}
}

func (h *CreateControlOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateControlOrderCommand,
) (*controlorder.ControlOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	draft := cmd.Draft()
	number, err := nextControlOrderNumber(ctx, h.sequence, draft.Type)
	if err != nil {
		return nil, err
	}

	order, err := controlorder.FromDraft(kernel.NewUUID(), number, draft, h.clock.Now())
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

	if err = uow.ControlOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
