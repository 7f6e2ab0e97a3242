// Package controlorderrepo maps production and assembly control orders to the
// control_orders table. Both types share the table; the type column tells
// them apart.
package controlorderrepo

import (
	"time"

	"github.com/google/uuid"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
)

type ControlOrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber           string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	OrderType             string     `gorm:"type:varchar(16);not null"`
	ProductionOrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedWorkstationID int64      `gorm:"not null;index"`
	ScheduleID            string     `gorm:"type:varchar(128);not null"`
	Priority              string     `gorm:"type:varchar(16);not null"`
	Status                string     `gorm:"type:varchar(32);not null"`
	TargetStart           *time.Time
	TargetCompletion      *time.Time
	ActualStart           *time.Time
	ActualCompletion      *time.Time
	ActualDurationMinutes *int
	Details               DetailsDTO `gorm:"embedded"`
	OperatorNotes         string     `gorm:"type:text;not null"`
	DefectsFound          int        `gorm:"not null"`
	DefectsReworked       int        `gorm:"not null"`
	ReworkRequired        bool       `gorm:"not null"`
	CreatedAt             time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (ControlOrderDTO) TableName() string {
	return "control_orders"
}

type DetailsDTO struct {
	Instructions             string `gorm:"type:text;not null"`
	QualityCheckpoints       string `gorm:"type:text;not null"`
	SafetyProcedures         string `gorm:"type:text;not null"`
	EstimatedDurationMinutes int    `gorm:"not null"`
	TestingProcedures        string `gorm:"type:text;not null"`
	PackagingRequirements    string `gorm:"type:text;not null"`
	ShippingNotes            string `gorm:"type:text;not null"`
}

func fromDomain(order *controlorder.ControlOrder) ControlOrderDTO {
	s := order.Snapshot()
	return ControlOrderDTO{
		ID:                    s.ID.Bytes(),
		OrderNumber:           s.Number,
		OrderType:             s.Type.String(),
		ProductionOrderID:     s.ProductionOrderID.Bytes(),
		AssignedWorkstationID: s.AssignedWorkstationID.Int64(),
		ScheduleID:            s.ScheduleID,
		Priority:              s.Priority.String(),
		Status:                s.Status.String(),
		TargetStart:           nullable(s.TargetStart),
		TargetCompletion:      nullable(s.TargetCompletion),
		ActualStart:           s.ActualStart,
		ActualCompletion:      s.ActualCompletion,
		ActualDurationMinutes: s.ActualDurationMinutes,
		Details: DetailsDTO{
			Instructions:             s.Details.Instructions,
			QualityCheckpoints:       s.Details.QualityCheckpoints,
			SafetyProcedures:         s.Details.SafetyProcedures,
			EstimatedDurationMinutes: s.Details.EstimatedDurationMinutes,
			TestingProcedures:        s.Details.TestingProcedures,
			PackagingRequirements:    s.Details.PackagingRequirements,
			ShippingNotes:            s.Details.ShippingNotes,
		},
		OperatorNotes:   s.OperatorNotes,
		DefectsFound:    s.DefectsFound,
		DefectsReworked: s.DefectsReworked,
		ReworkRequired:  s.ReworkRequired,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toDomain(dto ControlOrderDTO) (*controlorder.ControlOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productionOrderID, err := kernel.UUIDFromBytes(dto.ProductionOrderID[:])
	if err != nil {
		return nil, err
	}

	return controlorder.RestoreControlOrder(controlorder.Snapshot{
		ID:                    id,
		Number:                dto.OrderNumber,
		Type:                  controlorder.Type(dto.OrderType),
		ProductionOrderID:     productionOrderID,
		AssignedWorkstationID: kernel.WorkstationID(dto.AssignedWorkstationID),
		ScheduleID:            dto.ScheduleID,
		Priority:              kernel.Priority(dto.Priority),
		Status:                controlorder.Status(dto.Status),
		TargetStart:           valueOf(dto.TargetStart),
		TargetCompletion:      valueOf(dto.TargetCompletion),
		ActualStart:           utc(dto.ActualStart),
		ActualCompletion:      utc(dto.ActualCompletion),
		ActualDurationMinutes: dto.ActualDurationMinutes,
		Details: controlorder.Details{
			Instructions:             dto.Details.Instructions,
			QualityCheckpoints:       dto.Details.QualityCheckpoints,
			SafetyProcedures:         dto.Details.SafetyProcedures,
			EstimatedDurationMinutes: dto.Details.EstimatedDurationMinutes,
			TestingProcedures:        dto.Details.TestingProcedures,
			PackagingRequirements:    dto.Details.PackagingRequirements,
			ShippingNotes:            dto.Details.ShippingNotes,
		},
		OperatorNotes:   dto.OperatorNotes,
		DefectsFound:    dto.DefectsFound,
		DefectsReworked: dto.DefectsReworked,
		ReworkRequired:  dto.ReworkRequired,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
	})
}

func nullable(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func valueOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
