package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/services"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/metrics"
)

const (
	// DefaultTaskDurationMinutes replaces a missing task duration.
	DefaultTaskDurationMinutes = 120

	defaultStartOffset = time.Hour
)

// SynthesisResult reports one control order created from a schedule. When the
// control order endpoint failed, ControlOrderNumber is a local placeholder,
// Degraded is true and Err holds the cause.
type SynthesisResult struct {
	Type               controlorder.Type
	WorkstationID      kernel.WorkstationID
	ControlOrderNumber string
	Degraded           bool
	Err                error
}

// SynthesizeControlOrdersCommandHandler fetches the schedule of a production
// order, plans one control order per production or assembly workstation and
// creates them through the control order gateway.
//
// A failed creation does not stop the loop; it yields a degraded result. The
// production order is marked as synthesized once the schedule had tasks.
type SynthesizeControlOrdersCommandHandler struct {
	uowFactory  ProductionOrderUoWFactory
	scheduler   ports.Scheduler
	gateway     ports.ControlOrderGateway
	synthesizer services.ControlOrderSynthesizer
	clock       ports.Clock
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewSynthesizeControlOrdersCommandHandler(
	uowFactory ProductionOrderUoWFactory,
	scheduler ports.Scheduler,
	gateway ports.ControlOrderGateway,
	clock ports.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) SynthesizeControlOrdersCommandHandler {
	return SynthesizeControlOrdersCommandHandler{
		uowFactory:  uowFactory,
		scheduler:   scheduler,
		gateway:     gateway,
		synthesizer: services.NewControlOrderSynthesizer(),
		clock:       clock,
		metrics:     m,
		logger:      logger.With(zap.String("component", "control-order-synthesis")),
	}
}

func (h *SynthesizeControlOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd SynthesizeControlOrdersCommand,
) ([]SynthesisResult, error) {
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
		return nil, productionorder.ErrScheduleIDIsRequired
	}

	log := h.logger.With(zap.String("productionOrder", order.Number()), zap.String("scheduleId", order.ScheduleID()))

	// Schedule reads are retried on the next tick, so a failure only leaves
	// the order waiting.
	sched, err := h.scheduler.GetSchedule(ctx, order.ScheduleID())
	if err != nil {
		log.Warn("failed to read schedule", zap.Error(err))
		return []SynthesisResult{}, nil
	}
	if len(sched.Tasks) == 0 {
		log.Info("schedule has no tasks yet")
		return []SynthesisResult{}, nil
	}

	now := h.clock.Now()
	fallbackStart := now.Add(defaultStartOffset)
	if expected := order.ExpectedCompletion(); expected != nil {
		fallbackStart = *expected
	}
	for i, task := range sched.Tasks {
		sched.Tasks[i] = task.WithDefaults(fallbackStart, DefaultTaskDurationMinutes)
	}

	plan := h.synthesizer.Plan(order.ID(), sched)
	for _, group := range plan.Skipped {
		log.Warn("skipping tasks of unknown workstation role",
			zap.String("workstationId", group.WorkstationID),
			zap.Int("tasks", len(group.Tasks)))
	}

	results := make([]SynthesisResult, 0, len(plan.Drafts))
	for _, draft := range plan.Drafts {
		results = append(results, h.create(ctx, draft, log))
	}

	if err = order.MarkControlOrdersSynthesized(now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return results, nil
}

func (h *SynthesizeControlOrdersCommandHandler) create(
	ctx context.Context,
	draft controlorder.Draft,
	log *zap.Logger,
) SynthesisResult {
	result := SynthesisResult{
		Type:          draft.Type,
		WorkstationID: draft.WorkstationID,
	}

	number, err := h.gateway.CreateControlOrder(ctx, draft)
	if err != nil {
		result.ControlOrderNumber = controlorder.PlaceholderNumber(draft.Type)
		result.Degraded = true
		result.Err = err
		log.Error("control order creation failed, using placeholder number",
			zap.Stringer("type", draft.Type),
			zap.Stringer("workstationId", draft.WorkstationID),
			zap.String("placeholder", result.ControlOrderNumber),
			zap.Error(err))
	} else {
		result.ControlOrderNumber = number
		log.Info("control order created",
			zap.Stringer("type", draft.Type),
			zap.String("controlOrder", number))
	}

	h.metrics.IncSynthesized(draft.Type.String(), result.Degraded)
	return result
}
