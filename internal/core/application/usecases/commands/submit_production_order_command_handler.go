package commands

import (
	"context"

	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

// SubmitProductionOrderCommandHandler sends a production order to the
// scheduler and records the returned schedule.
//
// Submitting an order that is already SUBMITTED or SCHEDULED returns it
// unchanged without calling the scheduler. Scheduler failures surface as
// *errs.SchedulerIntegrationError and leave the order untouched.
type SubmitProductionOrderCommandHandler struct {
	uowFactory ProductionOrderUoWFactory
	scheduler  ports.Scheduler
	clock      ports.Clock
	logger     *zap.Logger
}

func NewSubmitProductionOrderCommandHandler(
	uowFactory ProductionOrderUoWFactory,
	scheduler ports.Scheduler,
	clock ports.Clock,
	logger *zap.Logger,
) SubmitProductionOrderCommandHandler {
	return SubmitProductionOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		clock:      clock,
		logger:     logger.With(zap.String("component", "production-planning")),
	}
}

func (h *SubmitProductionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitProductionOrderCommand,
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

	if order.IsSubmitted() {
		h.logger.Debug("production order already submitted",
			zap.String("productionOrder", order.Number()),
			zap.String("scheduleId", order.ScheduleID()))
		return order, nil
	}
	if !order.CanTransitionTo(productionorder.Submitted) {
		return nil, errs.NewIllegalTransitionError(
			productionorder.AggregateType, order.Status().String(), productionorder.Submitted.String(),
		)
	}

	receipt, err := h.scheduler.Submit(ctx, ports.ScheduleRequest{
		OrderNumber:           order.Number(),
		SourceCustomerOrderID: order.CustomerOrderID(),
		DueDate:               order.DueDate(),
		Priority:              order.Priority(),
		Notes:                 order.Notes(),
	})
	if err != nil {
		return nil, err
	}

	err = order.MarkSubmitted(receipt.ScheduleID, receipt.EstimatedDurationMinutes, receipt.EstimatedCompletion, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("production order submitted",
		zap.String("productionOrder", order.Number()),
		zap.String("scheduleId", order.ScheduleID()))
	return order, nil
}
