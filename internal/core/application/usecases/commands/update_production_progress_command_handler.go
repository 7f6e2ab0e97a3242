package commands

import (
	"context"

	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
)

// UpdateProductionProgressCommandHandler mirrors the scheduler status onto a
// production order. The order is saved only when the mapped status differs
// and the transition is legal. Scheduler errors are logged and the current
// order is returned.
type UpdateProductionProgressCommandHandler struct {
	uowFactory ProductionOrderUoWFactory
	scheduler  ports.Scheduler
	clock      ports.Clock
	logger     *zap.Logger
}

func NewUpdateProductionProgressCommandHandler(
	uowFactory ProductionOrderUoWFactory,
	scheduler ports.Scheduler,
	clock ports.Clock,
	logger *zap.Logger,
) UpdateProductionProgressCommandHandler {
	return UpdateProductionProgressCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
		logger:     logger.With(zap.String("component", "production-progress")),
	}
}

func (h *UpdateProductionProgressCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateProductionProgressCommand,
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
	if !order.HasSchedule() {
		return order, nil
	}

	log := h.logger.With(zap.String("productionOrder", order.Number()), zap.String("scheduleId", order.ScheduleID()))

	reported, err := h.scheduler.GetStatus(ctx, order.ScheduleID())
	if err != nil {
		log.Warn("scheduler status unavailable", zap.Error(err))
		return order, nil
	}

	status := productionorder.StatusFromScheduler(reported)
	if status == order.Status() {
		return order, nil
	}
	if !order.CanTransitionTo(status) {
		log.Info("ignoring scheduler status",
			zap.String("reported", reported),
			zap.Stringer("current", order.Status()))
		return order, nil
	}

	if _, err = order.SyncStatus(status, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info("production order progressed", zap.Stringer("status", order.Status()))
	return order, nil
}
