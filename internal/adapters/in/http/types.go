package http

import (
	"time"

	"manufacturing/internal/core/application/usecases/commands"
	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewCustomerOrderItem struct {
	ItemType string `json:"itemType"`
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type NewCustomerOrder struct {
	WorkstationID int64                  `json:"workstationId"`
	Items         []NewCustomerOrderItem `json:"items"`
	Notes         string                 `json:"notes,omitempty"`
}

type StatusChange struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type CustomerOrderItem struct {
	ID       string `json:"id"`
	ItemType string `json:"itemType"`
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type CustomerOrder struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	WorkstationID int64               `json:"workstationId"`
	Status        string              `json:"status"`
	Items         []CustomerOrderItem `json:"items"`
	Notes         string              `json:"notes,omitempty"`
	OrderDate     time.Time           `json:"orderDate"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type NewWarehouseOrder struct {
	CustomerOrderID         string `json:"customerOrderId"`
	FulfillingWorkstationID int64  `json:"fulfillingWorkstationId"`
	TriggerScenario         string `json:"triggerScenario,omitempty"`
	Notes                   string `json:"notes,omitempty"`
}

type WarehouseOrderItem struct {
	ID                string `json:"id"`
	ItemID            int64  `json:"itemId"`
	ItemName          string `json:"itemName"`
	ItemType          string `json:"itemType"`
	RequestedQuantity int    `json:"requestedQuantity"`
	FulfilledQuantity int    `json:"fulfilledQuantity"`
}

type WarehouseOrder struct {
	ID                      string               `json:"id"`
	OrderNumber             string               `json:"orderNumber"`
	CustomerOrderID         string               `json:"customerOrderId"`
	RequestingWorkstationID int64                `json:"requestingWorkstationId"`
	FulfillingWorkstationID int64                `json:"fulfillingWorkstationId"`
	Status                  string               `json:"status"`
	TriggerScenario         string               `json:"triggerScenario,omitempty"`
	Items                   []WarehouseOrderItem `json:"items"`
	Notes                   string               `json:"notes,omitempty"`
	OrderDate               time.Time            `json:"orderDate"`
	CreatedAt               time.Time            `json:"createdAt"`
	UpdatedAt               time.Time            `json:"updatedAt"`
}

type Fulfillment struct {
	Fulfilled       bool             `json:"fulfilled"`
	WarehouseOrder  WarehouseOrder   `json:"warehouseOrder"`
	ProductionOrder *ProductionOrder `json:"productionOrder,omitempty"`
}

type NewProductionOrder struct {
	CustomerOrderID        string    `json:"customerOrderId"`
	WarehouseOrderID       string    `json:"warehouseOrderId,omitempty"`
	Priority               string    `json:"priority"`
	DueDate                time.Time `json:"dueDate"`
	CreatedByWorkstationID int64     `json:"createdByWorkstationId"`
	AssignedWorkstationID  int64     `json:"assignedWorkstationId"`
	Notes                  string    `json:"notes,omitempty"`
}

type ProductionOrder struct {
	ID                       string     `json:"id"`
	OrderNumber              string     `json:"orderNumber"`
	CustomerOrderID          string     `json:"customerOrderId"`
	WarehouseOrderID         *string    `json:"warehouseOrderId,omitempty"`
	Priority                 string     `json:"priority"`
	DueDate                  time.Time  `json:"dueDate"`
	ScheduleID               string     `json:"scheduleId,omitempty"`
	EstimatedDurationMinutes int        `json:"estimatedDurationMinutes"`
	ExpectedCompletion       *time.Time `json:"expectedCompletion,omitempty"`
	Status                   string     `json:"status"`
	CreatedByWorkstationID   int64      `json:"createdByWorkstationId"`
	AssignedWorkstationID    int64      `json:"assignedWorkstationId"`
	Notes                    string     `json:"notes,omitempty"`
	ControlOrdersSynthesized bool       `json:"controlOrdersSynthesized"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

type SynthesisResult struct {
	Type               string `json:"type"`
	WorkstationID      int64  `json:"workstationId"`
	ControlOrderNumber string `json:"controlOrderNumber"`
	Degraded           bool   `json:"degraded"`
	Error              string `json:"error,omitempty"`
}

type ScheduledTask struct {
	TaskID          string    `json:"taskId"`
	ItemID          string    `json:"itemId"`
	ItemName        string    `json:"itemName,omitempty"`
	Quantity        int       `json:"quantity"`
	WorkstationID   string    `json:"workstationId"`
	WorkstationName string    `json:"workstationName,omitempty"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status,omitempty"`
	Sequence        int       `json:"sequence"`
}

// NewControlOrder is the body of /production-control-orders and
// /assembly-control-orders. Times are accepted in RFC 3339 or in the
// scheduler's local layout.
type NewControlOrder struct {
	SourceProductionOrderID  string `json:"sourceProductionOrderId"`
	AssignedWorkstationID    int64  `json:"assignedWorkstationId"`
	SimalScheduleID          string `json:"simalScheduleId,omitempty"`
	TargetStartTime          string `json:"targetStartTime,omitempty"`
	TargetCompletionTime     string `json:"targetCompletionTime,omitempty"`
	Priority                 string `json:"priority"`
	Instructions             string `json:"instructions,omitempty"`
	QualityCheckpoints       string `json:"qualityCheckpoints,omitempty"`
	SafetyProcedures         string `json:"safetyProcedures,omitempty"`
	EstimatedDurationMinutes int    `json:"estimatedDurationMinutes,omitempty"`
	TestingProcedures        string `json:"testingProcedures,omitempty"`
	PackagingRequirements    string `json:"packagingRequirements,omitempty"`
}

type CreatedControlOrder struct {
	ID                 string `json:"id"`
	ControlOrderNumber string `json:"controlOrderNumber"`
}

type ControlOrderAction struct {
	Reason string `json:"reason,omitempty"`
}

type Defects struct {
	Found          int  `json:"found"`
	Reworked       int  `json:"reworked"`
	ReworkRequired bool `json:"reworkRequired"`
}

type ControlOrderRecord struct {
	OperatorNotes *string  `json:"operatorNotes,omitempty"`
	Defects       *Defects `json:"defects,omitempty"`
	ShippingNotes *string  `json:"shippingNotes,omitempty"`
}

type ControlOrder struct {
	ID                       string     `json:"id"`
	ControlOrderNumber       string     `json:"controlOrderNumber"`
	Type                     string     `json:"type"`
	SourceProductionOrderID  string     `json:"sourceProductionOrderId"`
	AssignedWorkstationID    int64      `json:"assignedWorkstationId"`
	SimalScheduleID          string     `json:"simalScheduleId,omitempty"`
	Priority                 string     `json:"priority"`
	Status                   string     `json:"status"`
	TargetStartTime          *time.Time `json:"targetStartTime,omitempty"`
	TargetCompletionTime     *time.Time `json:"targetCompletionTime,omitempty"`
	ActualStartTime          *time.Time `json:"actualStartTime,omitempty"`
	ActualCompletionTime     *time.Time `json:"actualCompletionTime,omitempty"`
	ActualDurationMinutes    *int       `json:"actualDurationMinutes,omitempty"`
	Instructions             string     `json:"instructions,omitempty"`
	QualityCheckpoints       string     `json:"qualityCheckpoints,omitempty"`
	SafetyProcedures         string     `json:"safetyProcedures,omitempty"`
	EstimatedDurationMinutes int        `json:"estimatedDurationMinutes,omitempty"`
	TestingProcedures        string     `json:"testingProcedures,omitempty"`
	PackagingRequirements    string     `json:"packagingRequirements,omitempty"`
	ShippingNotes            string     `json:"shippingNotes,omitempty"`
	OperatorNotes            string     `json:"operatorNotes,omitempty"`
	DefectsFound             int        `json:"defectsFound"`
	DefectsReworked          int        `json:"defectsReworked"`
	ReworkRequired           bool       `json:"reworkRequired"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

type NewSupplyItem struct {
	PartID   int64  `json:"partId"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type SupplyRequest struct {
	NeededBy *time.Time      `json:"neededBy,omitempty"`
	Items    []NewSupplyItem `json:"items"`
	Notes    string          `json:"notes,omitempty"`
}

type NewSupplyOrder struct {
	SourceControlOrderID    string          `json:"sourceControlOrderId"`
	SourceType              string          `json:"sourceType"`
	RequestingWorkstationID int64           `json:"requestingWorkstationId"`
	Priority                string          `json:"priority"`
	NeededBy                *time.Time      `json:"neededBy,omitempty"`
	Items                   []NewSupplyItem `json:"items"`
	Notes                   string          `json:"notes,omitempty"`
}

type SupplyFulfillment struct {
	Quantity int `json:"quantity"`
}

type SupplyOrderItem struct {
	ID                string `json:"id"`
	PartID            int64  `json:"partId"`
	RequestedQuantity int    `json:"requestedQuantity"`
	SuppliedQuantity  int    `json:"suppliedQuantity"`
	Unit              string `json:"unit"`
	Notes             string `json:"notes,omitempty"`
}

type SupplyOrder struct {
	ID                      string            `json:"id"`
	SupplyOrderNumber       string            `json:"supplyOrderNumber"`
	SourceControlOrderID    string            `json:"sourceControlOrderId"`
	SourceType              string            `json:"sourceType"`
	RequestingWorkstationID int64             `json:"requestingWorkstationId"`
	SupplyWarehouseID       int64             `json:"supplyWarehouseWorkstationId"`
	Status                  string            `json:"status"`
	Priority                string            `json:"priority"`
	Items                   []SupplyOrderItem `json:"items"`
	NeededBy                *time.Time        `json:"neededBy,omitempty"`
	FulfilledAt             *time.Time        `json:"fulfilledAt,omitempty"`
	RejectedAt              *time.Time        `json:"rejectedAt,omitempty"`
	CancelledAt             *time.Time        `json:"cancelledAt,omitempty"`
	Notes                   string            `json:"notes,omitempty"`
	CreatedAt               time.Time         `json:"createdAt"`
	UpdatedAt               time.Time         `json:"updatedAt"`
}

func toCustomerOrder(o *customerorder.CustomerOrder) CustomerOrder {
	items := make([]CustomerOrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, CustomerOrderItem{
			ID:       item.ID().String(),
			ItemType: item.ItemType(),
			ItemID:   item.ItemID(),
			Quantity: item.Quantity(),
			Notes:    item.Notes(),
		})
	}
	return CustomerOrder{
		ID:            o.ID().String(),
		OrderNumber:   o.Number(),
		WorkstationID: o.WorkstationID().Int64(),
		Status:        o.Status().String(),
		Items:         items,
		Notes:         o.Notes(),
		OrderDate:     o.OrderDate(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func toWarehouseOrder(o *warehouseorder.WarehouseOrder) WarehouseOrder {
	items := make([]WarehouseOrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, WarehouseOrderItem{
			ID:                item.ID().String(),
			ItemID:            item.ItemID(),
			ItemName:          item.ItemName(),
			ItemType:          item.ItemType(),
			RequestedQuantity: item.RequestedQuantity(),
			FulfilledQuantity: item.FulfilledQuantity(),
		})
	}
	return WarehouseOrder{
		ID:                      o.ID().String(),
		OrderNumber:             o.Number(),
		CustomerOrderID:         o.CustomerOrderID().String(),
		RequestingWorkstationID: o.RequestingWorkstationID().Int64(),
		FulfillingWorkstationID: o.FulfillingWorkstationID().Int64(),
		Status:                  o.Status().String(),
		TriggerScenario:         o.TriggerScenario(),
		Items:                   items,
		Notes:                   o.Notes(),
		OrderDate:               o.OrderDate(),
		CreatedAt:               o.CreatedAt(),
		UpdatedAt:               o.UpdatedAt(),
	}
}

func toFulfillment(r commands.FulfillmentResult) Fulfillment {
	out := Fulfillment{
		Fulfilled:      r.Fulfilled(),
		WarehouseOrder: toWarehouseOrder(r.WarehouseOrder),
	}
	if r.ProductionOrder != nil {
		po := toProductionOrder(r.ProductionOrder)
		out.ProductionOrder = &po
	}
	return out
}

func toProductionOrder(o *productionorder.ProductionOrder) ProductionOrder {
	s := o.Snapshot()
	out := ProductionOrder{
		ID:                       s.ID.String(),
		OrderNumber:              s.Number,
		CustomerOrderID:          s.CustomerOrderID.String(),
		Priority:                 s.Priority.String(),
		DueDate:                  s.DueDate,
		ScheduleID:               s.ScheduleID,
		EstimatedDurationMinutes: s.EstimatedDurationMinutes,
		ExpectedCompletion:       s.ExpectedCompletion,
		Status:                   s.Status.String(),
		CreatedByWorkstationID:   s.CreatedByWorkstationID.Int64(),
		AssignedWorkstationID:    s.AssignedWorkstationID.Int64(),
		Notes:                    s.Notes,
		ControlOrdersSynthesized: s.ControlOrdersSynthesized,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
	if s.WarehouseOrderID != nil {
		id := s.WarehouseOrderID.String()
		out.WarehouseOrderID = &id
	}
	return out
}

func toSynthesisResults(results []commands.SynthesisResult) []SynthesisResult {
	out := make([]SynthesisResult, 0, len(results))
	for _, r := range results {
		res := SynthesisResult{
			Type:               r.Type.String(),
			WorkstationID:      r.WorkstationID.Int64(),
			ControlOrderNumber: r.ControlOrderNumber,
			Degraded:           r.Degraded,
		}
		if r.Err != nil {
			res.Error = r.Err.Error()
		}
		out = append(out, res)
	}
	return out
}

func toScheduledTasks(tasks []schedule.Task) []ScheduledTask {
	out := make([]ScheduledTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ScheduledTask{
			TaskID:          t.TaskID,
			ItemID:          t.ItemID,
			ItemName:        t.ItemName,
			Quantity:        t.Quantity,
			WorkstationID:   t.WorkstationID,
			WorkstationName: t.WorkstationName,
			StartTime:       t.Start,
			EndTime:         t.End,
			DurationMinutes: t.DurationMinutes,
			Status:          t.Status,
			Sequence:        t.Sequence,
		})
	}
	return out
}

func toControlOrder(o *controlorder.ControlOrder) ControlOrder {
	s := o.Snapshot()
	return ControlOrder{
		ID:                       s.ID.String(),
		ControlOrderNumber:       s.Number,
		Type:                     s.Type.String(),
		SourceProductionOrderID:  s.ProductionOrderID.String(),
		AssignedWorkstationID:    s.AssignedWorkstationID.Int64(),
		SimalScheduleID:          s.ScheduleID,
		Priority:                 s.Priority.String(),
		Status:                   s.Status.String(),
		TargetStartTime:          optionalTime(s.TargetStart),
		TargetCompletionTime:     optionalTime(s.TargetCompletion),
		ActualStartTime:          s.ActualStart,
		ActualCompletionTime:     s.ActualCompletion,
		ActualDurationMinutes:    s.ActualDurationMinutes,
		Instructions:             s.Details.Instructions,
		QualityCheckpoints:       s.Details.QualityCheckpoints,
		SafetyProcedures:         s.Details.SafetyProcedures,
		EstimatedDurationMinutes: s.Details.EstimatedDurationMinutes,
		TestingProcedures:        s.Details.TestingProcedures,
		PackagingRequirements:    s.Details.PackagingRequirements,
		ShippingNotes:            s.Details.ShippingNotes,
		OperatorNotes:            s.OperatorNotes,
		DefectsFound:             s.DefectsFound,
		DefectsReworked:          s.DefectsReworked,
		ReworkRequired:           s.ReworkRequired,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

func toSupplyOrder(o *supplyorder.SupplyOrder) SupplyOrder {
	s := o.Snapshot()
	items := make([]SupplyOrderItem, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SupplyOrderItem{
			ID:                item.ID().String(),
			PartID:            item.PartID(),
			RequestedQuantity: item.RequestedQuantity(),
			SuppliedQuantity:  item.SuppliedQuantity(),
			Unit:              item.Unit(),
			Notes:             item.Notes(),
		})
	}
	return SupplyOrder{
		ID:                      s.ID.String(),
		SupplyOrderNumber:       s.Number,
		SourceControlOrderID:    s.SourceControlOrderID.String(),
		SourceType:              s.SourceType.String(),
		RequestingWorkstationID: s.RequestingWorkstationID.Int64(),
		SupplyWarehouseID:       s.SupplyWorkstationID.Int64(),
		Status:                  s.Status.String(),
		Priority:                s.Priority.String(),
		Items:                   items,
		NeededBy:                s.NeededBy,
		FulfilledAt:             s.FulfilledAt,
		RejectedAt:              s.RejectedAt,
		CancelledAt:             s.CancelledAt,
		Notes:                   s.Notes,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
