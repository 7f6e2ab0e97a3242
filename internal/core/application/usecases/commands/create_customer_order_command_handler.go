package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
)

// CreateCustomerOrderCommandHandler numbers and stores a PENDING customer order.
type CreateCustomerOrderCommandHandler struct {
	uowFactory UoWFactory
	sequence   ports.SequenceGenerator
	clock      ports.Clock
}

func NewCreateCustomerOrderCommandHandler(
	uowFactory UoWFactory,
	sequence ports.SequenceGenerator,
	clock ports.Clock,
) CreateCustomerOrderCommandHandler {
	return CreateCustomerOrderCommandHandler{
		uowFactory: uowFactory,
		sequence:   sequence,
		clock:      clock,
	}
}

func (h *CreateCustomerOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateCustomerOrderCommand,
) (*customerorder.CustomerOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	number, err := nextNumber(ctx, h.sequence, ports.CustomerOrderSeries, customerOrderNumberFormat)
	if err != nil {
		return nil, err
	}

	order, err := customerorder.NewCustomerOrder(
		kernel.NewUUID(), number, cmd.WorkstationID(), cmd.Items(), cmd.Notes(), h.clock.Now(),
	)
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

	if err = uow.CustomerOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
