// Package controlorders provides the two ports.ControlOrderGateway
// implementations: the remote control order endpoint and the local create
// command.
package controlorders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/httpclient"
)

const timeLayout = "2006-01-02T15:04:05"

var errMissingNumber = errors.New("response carries no controlOrderNumber")

type creator interface {
	Create(ctx context.Context, operation, path string, in, out any) error
}

// HTTPGateway creates control orders through the remote endpoint.
type HTTPGateway struct {
	http creator
}

var _ ports.ControlOrderGateway = (*HTTPGateway)(nil)

func NewHTTPGateway(http *httpclient.Client) *HTTPGateway {
	return &HTTPGateway{http: http}
}

// CreateRequest is the body accepted by /production-control-orders and
// /assembly-control-orders.
type CreateRequest struct {
	SourceProductionOrderID  string `json:"sourceProductionOrderId"`
	AssignedWorkstationID    int64  `json:"assignedWorkstationId"`
	SimalScheduleID          string `json:"simalScheduleId"`
	TargetStartTime          string `json:"targetStartTime"`
	TargetCompletionTime     string `json:"targetCompletionTime"`
	Priority                 string `json:"priority"`
	Instructions             string `json:"instructions"`
	QualityCheckpoints       string `json:"qualityCheckpoints"`
	SafetyProcedures         string `json:"safetyProcedures,omitempty"`
	EstimatedDurationMinutes int    `json:"estimatedDurationMinutes,omitempty"`
	TestingProcedures        string `json:"testingProcedures,omitempty"`
	PackagingRequirements    string `json:"packagingRequirements,omitempty"`
}

type createResponse struct {
	ControlOrderNumber string `json:"controlOrderNumber"`
}

func (g *HTTPGateway) CreateControlOrder(ctx context.Context, draft controlorder.Draft) (string, error) {
	path := "/production-control-orders"
	if draft.Type == controlorder.Assembly {
		path = "/assembly-control-orders"
	}
	op := "create_" + strings.ToLower(draft.Type.String()) + "_control_order"

	var resp createResponse
	if err := g.http.Create(ctx, op, path, NewCreateRequest(draft), &resp); err != nil {
		return "", fmt.Errorf("create %s control order: %w", strings.ToLower(draft.Type.String()), err)
	}
	if strings.TrimSpace(resp.ControlOrderNumber) == "" {
		return "", errMissingNumber
	}
	return resp.ControlOrderNumber, nil
}

func NewCreateRequest(draft controlorder.Draft) CreateRequest {
	return CreateRequest{
		SourceProductionOrderID:  draft.ProductionOrderID.String(),
		AssignedWorkstationID:    int64(draft.WorkstationID),
		SimalScheduleID:          draft.ScheduleID,
		TargetStartTime:          formatTime(draft.TargetStart),
		TargetCompletionTime:     formatTime(draft.TargetCompletion),
		Priority:                 draft.Priority.String(),
		Instructions:             draft.Details.Instructions,
		QualityCheckpoints:       draft.Details.QualityCheckpoints,
		SafetyProcedures:         draft.Details.SafetyProcedures,
		EstimatedDurationMinutes: draft.Details.EstimatedDurationMinutes,
		TestingProcedures:        draft.Details.TestingProcedures,
		PackagingRequirements:    draft.Details.PackagingRequirements,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}
