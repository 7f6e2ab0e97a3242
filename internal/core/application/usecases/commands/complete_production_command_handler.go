package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
)

// CompleteProductionCommandHandler completes an order at the scheduler and
// locally. Orders without a schedule are completed locally only.
type CompleteProductionCommandHandler struct {
	uowFactory ProductionOrderUoWFactory
	scheduler  ports.Scheduler
	clock      ports.Clock
}

func NewCompleteProductionCommandHandler(
	uowFactory ProductionOrderUoWFactory,
	scheduler ports.Scheduler,
	clock ports.Clock,
) CompleteProductionCommandHandler {
	return CompleteProductionCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
	}
}

func (h *CompleteProductionCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteProductionCommand,
) (*productionorder.ProductionOrder, error) {
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

	repo := uow.ProductionOrderRepository()
	order, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = order.Complete(h.clock.Now()); err != nil {
		return nil, err
	}

	if order.HasSchedule() {
		if err = h.scheduler.Complete(ctx, order.ScheduleID()); err != nil {
			return nil, err
		}
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
