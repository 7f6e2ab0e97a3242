package queries

import (
	"context"

	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/ports"
)

// GetScheduledTasksQueryHandler is a read path: scheduler failures are logged
// and reported as an empty task list.
type GetScheduledTasksQueryHandler struct {
	scheduler ports.Scheduler
	logger    *zap.Logger
}

func NewGetScheduledTasksQueryHandler(scheduler ports.Scheduler, logger *zap.Logger) GetScheduledTasksQueryHandler {
	return GetScheduledTasksQueryHandler{
		scheduler: scheduler,
		logger:    logger.With(zap.String("component", "scheduled-tasks-query")),
	}
}

func (h GetScheduledTasksQueryHandler) Handle(ctx context.Context, query GetScheduledTasksQuery) ([]schedule.Task, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s, err := h.scheduler.GetSchedule(ctx, query.ScheduleID())
	if err != nil {
		h.logger.Warn("scheduled tasks unavailable",
			zap.String("scheduleId", query.ScheduleID()),
			zap.Error(err),
		)
		return []schedule.Task{}, nil
	}
	if s.Tasks == nil {
		return []schedule.Task{}, nil
	}
	return s.Tasks, nil
}
