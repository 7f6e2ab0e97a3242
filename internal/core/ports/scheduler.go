package ports

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/schedule"
)

// ScheduleRequest is what the external scheduler needs to plan a production order.
type ScheduleRequest struct {
	OrderNumber           string
	SourceCustomerOrderID kernel.UUID
	DueDate               time.Time
	Priority              kernel.Priority
	Notes                 string
}

// ScheduleReceipt is the scheduler's answer to a submission.
type ScheduleReceipt struct {
	ScheduleID               string
	EstimatedDurationMinutes int
	EstimatedCompletion      *time.Time
}

// Scheduler is the external scheduling engine. Failures are reported as
// *errs.SchedulerIntegrationError.
type Scheduler interface {
	Submit(ctx context.Context, req ScheduleRequest) (ScheduleReceipt, error)
	GetSchedule(ctx context.Context, scheduleID string) (schedule.Schedule, error)
	GetStatus(ctx context.Context, scheduleID string) (string, error)
	Start(ctx context.Context, scheduleID string) error
	Complete(ctx context.Context, scheduleID string) error
}
