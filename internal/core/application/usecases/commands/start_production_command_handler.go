package commands

import (
	"context"

	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
)

// StartProductionCommandHandler starts a SCHEDULED order at the scheduler and
// moves it to IN_PRODUCTION.
type StartProductionCommandHandler struct {
	uowFactory ProductionOrderUoWFactory
	scheduler  ports.Scheduler
	clock      ports.Clock
}

func NewStartProductionCommandHandler(
	uowFactory ProductionOrderUoWFactory,
	scheduler ports.Scheduler,
	clock ports.Clock,
) StartProductionCommandHandler {
	return StartProductionCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
	}
}

func (h *StartProductionCommandHandler) Handle(
	ctx context.Context,
	cmd StartProductionCommand,
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

	if err = order.StartProduction(h.clock.Now()); err != nil {
		return nil, err
	}

	if err = h.scheduler.Start(ctx, order.ScheduleID()); err != nil {
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
