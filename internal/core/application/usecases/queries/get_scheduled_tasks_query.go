package queries

import (
	"errors"
	"strings"

	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrGetScheduledTasksQueryIsNotConstructed = errors.New(
	"GetScheduledTasksQuery must be created via NewGetScheduledTasksQuery constructor",
)

// GetScheduledTasksQuery asks the external scheduler for the tasks planned
// under a schedule.
type GetScheduledTasksQuery struct { //nolint:recvcheck //using for validation
	scheduleID string

	guard guard.ConstructorGuard
}

func NewGetScheduledTasksQuery(scheduleID string) (GetScheduledTasksQuery, error) {
	scheduleID = strings.TrimSpace(scheduleID)
	if scheduleID == "" {
		return GetScheduledTasksQuery{}, errs.NewValueIsRequiredError("scheduleId")
	}
	return GetScheduledTasksQuery{scheduleID: scheduleID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetScheduledTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduledTasksQueryIsNotConstructed)
}

func (q GetScheduledTasksQuery) ScheduleID() string {
	return q.scheduleID
}
