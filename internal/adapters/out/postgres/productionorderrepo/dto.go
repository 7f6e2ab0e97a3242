// Package productionorderrepo maps production orders to the production_orders table.
package productionorderrepo

import (
	"time"

	"github.com/google/uuid"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
)

type ProductionOrderDTO struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber              string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerOrderID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	WarehouseOrderID         *uuid.UUID `gorm:"type:uuid;index"`
	Priority                 string     `gorm:"type:varchar(16);not null"`
	DueDate                  time.Time  `gorm:"not null"`
	ScheduleID               string     `gorm:"type:varchar(128);not null"`
	EstimatedDurationMinutes int        `gorm:"not null"`
	ExpectedCompletion       *time.Time
	Status                   string    `gorm:"type:varchar(32);not null;index"`
	CreatedByWorkstationID   int64     `gorm:"not null"`
	AssignedWorkstationID    int64     `gorm:"not null"`
	Notes                    string    `gorm:"type:text;not null"`
	ControlOrdersSynthesized bool      `gorm:"not null"`
	CreatedAt                time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt                time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (ProductionOrderDTO) TableName() string {
	return "production_orders"
}

func fromDomain(order *productionorder.ProductionOrder) ProductionOrderDTO {
	s := order.Snapshot()

	var warehouseOrderID *uuid.UUID
	if s.WarehouseOrderID != nil {
		raw := s.WarehouseOrderID.Bytes()
		warehouseOrderID = &raw
	}

	return ProductionOrderDTO{
		ID:                       s.ID.Bytes(),
		OrderNumber:              s.Number,
		CustomerOrderID:          s.CustomerOrderID.Bytes(),
		WarehouseOrderID:         warehouseOrderID,
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
}

func toDomain(dto ProductionOrderDTO) (*productionorder.ProductionOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerOrderID, err := kernel.UUIDFromBytes(dto.CustomerOrderID[:])
	if err != nil {
		return nil, err
	}

	var warehouseOrderID *kernel.UUID
	if dto.WarehouseOrderID != nil {
		wID, warehouseErr := kernel.UUIDFromBytes((*dto.WarehouseOrderID)[:])
		if warehouseErr != nil {
			return nil, warehouseErr
		}
		warehouseOrderID = &wID
	}

	var expected *time.Time
	if dto.ExpectedCompletion != nil {
		utc := dto.ExpectedCompletion.UTC()
		expected = &utc
	}

	return productionorder.RestoreProductionOrder(productionorder.Snapshot{
		ID:                       id,
		Number:                   dto.OrderNumber,
		CustomerOrderID:          customerOrderID,
		WarehouseOrderID:         warehouseOrderID,
		Priority:                 kernel.Priority(dto.Priority),
		DueDate:                  dto.DueDate.UTC(),
		ScheduleID:               dto.ScheduleID,
		EstimatedDurationMinutes: dto.EstimatedDurationMinutes,
		ExpectedCompletion:       expected,
		Status:                   productionorder.Status(dto.Status),
		CreatedByWorkstationID:   kernel.WorkstationID(dto.CreatedByWorkstationID),
		AssignedWorkstationID:    kernel.WorkstationID(dto.AssignedWorkstationID),
		Notes:                    dto.Notes,
		ControlOrdersSynthesized: dto.ControlOrdersSynthesized,
		CreatedAt:                dto.CreatedAt.UTC(),
		UpdatedAt:                dto.UpdatedAt.UTC(),
	})
}
