// Package scheduler talks to the external production scheduling engine over
// HTTP/JSON.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/httpclient"
)

// timeLayout is the local date-time format the scheduler reads and writes.
const timeLayout = "2006-01-02T15:04:05"

const scheduledOrdersPath = "/simal/scheduled-orders/"

var errMissingScheduleID = errors.New("response carries no scheduleId")

type doer interface {
	Get(ctx context.Context, operation, path string, out any) error
	Post(ctx context.Context, operation, path string, in, out any) error
	Create(ctx context.Context, operation, path string, in, out any) error
}

// Client implements ports.Scheduler. Every failure is returned as
// *errs.SchedulerIntegrationError.
type Client struct {
	http doer
}

var _ ports.Scheduler = (*Client)(nil)

func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// submitRequest carries the order number under both names schedulers read.
type submitRequest struct {
	OrderNumber           string `json:"orderNumber"`
	ProductionOrderNumber string `json:"productionOrderNumber"`
	SourceCustomerOrderID string `json:"sourceCustomerOrderId"`
	DueDate               string `json:"dueDate"`
	Priority              string `json:"priority"`
	Notes                 string `json:"notes,omitempty"`
}

type submitResponse struct {
	ScheduleID          string `json:"scheduleId"`
	EstimatedDuration   int    `json:"estimatedDuration"`
	EstimatedCompletion string `json:"estimatedCompletion"`
}

// scheduledOrderResponse lists tasks under "tasks"; older schedulers use
// "scheduledTasks".
type scheduledOrderResponse struct {
	ScheduleID              string                  `json:"scheduleId"`
	OrderNumber             string                  `json:"orderNumber"`
	Status                  string                  `json:"status"`
	EstimatedCompletionTime string                  `json:"estimatedCompletionTime"`
	Tasks                   []scheduledTaskResponse `json:"tasks"`
	ScheduledTasks          []scheduledTaskResponse `json:"scheduledTasks"`
	TotalDuration           int                     `json:"totalDuration"`
}

type scheduledTaskResponse struct {
	TaskID          string `json:"taskId"`
	ItemID          string `json:"itemId"`
	ItemName        string `json:"itemName"`
	Quantity        int    `json:"quantity"`
	WorkstationID   string `json:"workstationId"`
	WorkstationName string `json:"workstationName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Duration        int    `json:"duration"`
	Status          string `json:"status"`
	Sequence        int    `json:"sequence"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Submit is sent once: a repeated submission would schedule the order twice.
func (c *Client) Submit(ctx context.Context, req ports.ScheduleRequest) (ports.ScheduleReceipt, error) {
	const op = "submit"

	var resp submitResponse
	if err := c.http.Create(ctx, op, "/simal/production-order", submitRequest{
		OrderNumber:           req.OrderNumber,
		ProductionOrderNumber: req.OrderNumber,
		SourceCustomerOrderID: req.SourceCustomerOrderID.String(),
		DueDate:               formatTime(req.DueDate),
		Priority:              req.Priority.String(),
		Notes:                 req.Notes,
	}, &resp); err != nil {
		return ports.ScheduleReceipt{}, integrationError(op, err)
	}

	if strings.TrimSpace(resp.ScheduleID) == "" {
		return ports.ScheduleReceipt{}, errs.NewSchedulerIntegrationErrorWithCause(op, errMissingScheduleID)
	}
	completion, err := parseOptionalTime(resp.EstimatedCompletion)
	if err != nil {
		return ports.ScheduleReceipt{}, errs.NewSchedulerIntegrationErrorWithCause(op, err)
	}

	return ports.ScheduleReceipt{
		ScheduleID:               resp.ScheduleID,
		EstimatedDurationMinutes: max(resp.EstimatedDuration, 0),
		EstimatedCompletion:      completion,
	}, nil
}

func (c *Client) GetSchedule(ctx context.Context, scheduleID string) (schedule.Schedule, error) {
	const op = "get_schedule"

	var resp scheduledOrderResponse
	if err := c.http.Get(ctx, op, scheduledOrdersPath+url.PathEscape(scheduleID), &resp); err != nil {
		return schedule.Schedule{}, integrationError(op, err)
	}

	completion, err := parseOptionalTime(resp.EstimatedCompletionTime)
	if err != nil {
		return schedule.Schedule{}, errs.NewSchedulerIntegrationErrorWithCause(op, err)
	}

	raw := resp.Tasks
	if len(raw) == 0 {
		raw = resp.ScheduledTasks
	}
	tasks := make([]schedule.Task, 0, len(raw))
	for _, t := range raw {
		task, err := t.toTask()
		if err != nil {
			return schedule.Schedule{}, errs.NewSchedulerIntegrationErrorWithCause(op, err)
		}
		tasks = append(tasks, task)
	}

	id := resp.ScheduleID
	if id == "" {
		id = scheduleID
	}
	return schedule.Schedule{
		ID:                  id,
		OrderNumber:         resp.OrderNumber,
		Status:              resp.Status,
		EstimatedCompletion: completion,
		Tasks:               tasks,
		TotalDuration:       resp.TotalDuration,
	}, nil
}

func (c *Client) GetStatus(ctx context.Context, scheduleID string) (string, error) {
	const op = "get_status"

	var resp statusResponse
	if err := c.http.Get(ctx, op, scheduledOrdersPath+url.PathEscape(scheduleID)+"/status", &resp); err != nil {
		return "", integrationError(op, err)
	}
	return resp.Status, nil
}

func (c *Client) Start(ctx context.Context, scheduleID string) error {
	const op = "start"
	if err := c.http.Post(ctx, op, scheduledOrdersPath+url.PathEscape(scheduleID)+"/start", struct{}{}, nil); err != nil {
		return integrationError(op, err)
	}
	return nil
}

func (c *Client) Complete(ctx context.Context, scheduleID string) error {
	const op = "complete"
	if err := c.http.Post(ctx, op, scheduledOrdersPath+url.PathEscape(scheduleID)+"/complete", struct{}{}, nil); err != nil {
		return integrationError(op, err)
	}
	return nil
}

func (t scheduledTaskResponse) toTask() (schedule.Task, error) {
	start, err := parseOptionalTime(t.StartTime)
	if err != nil {
		return schedule.Task{}, fmt.Errorf("task %s start: %w", t.TaskID, err)
	}
	end, err := parseOptionalTime(t.EndTime)
	if err != nil {
		return schedule.Task{}, fmt.Errorf("task %s end: %w", t.TaskID, err)
	}

	task := schedule.Task{
		TaskID:          t.TaskID,
		ItemID:          t.ItemID,
		ItemName:        t.ItemName,
		Quantity:        t.Quantity,
		WorkstationID:   t.WorkstationID,
		WorkstationName: t.WorkstationName,
		DurationMinutes: t.Duration,
		Status:          t.Status,
		Sequence:        t.Sequence,
	}
	if start != nil {
		task.Start = *start
	}
	if end != nil {
		task.End = *end
	}
	return task, nil
}

func integrationError(operation string, err error) error {
	e := errs.NewSchedulerIntegrationErrorWithCause(operation, err)
	e.StatusCode = httpclient.StatusCode(err)
	return e
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// parseOptionalTime accepts the scheduler's local layout as well as RFC 3339.
// Local times are read as UTC.
func parseOptionalTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{timeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised time %q", s)
}
