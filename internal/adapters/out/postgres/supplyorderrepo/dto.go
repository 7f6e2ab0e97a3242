// Package supplyorderrepo maps supply orders and their parts to the
// supply_orders and supply_order_items tables.
package supplyorderrepo

import (
	"time"

	"github.com/google/uuid"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/supplyorder"
)

type SupplyOrderDTO struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber             string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	SourceControlOrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceType              string    `gorm:"type:varchar(16);not null"`
	RequestingWorkstationID int64     `gorm:"not null;index"`
	SupplyWorkstationID     int64     `gorm:"not null;index"`
	Status                  string    `gorm:"type:varchar(32);not null"`
	Priority                string    `gorm:"type:varchar(16);not null"`
	NeededBy                *time.Time
	FulfilledAt             *time.Time
	RejectedAt              *time.Time
	CancelledAt             *time.Time
	Notes                   string    `gorm:"type:text;not null"`
	CreatedAt               time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt               time.Time `gorm:"not null;autoUpdateTime:false"`
	Items                   []ItemDTO `gorm:"foreignKey:SupplyOrderID;constraint:OnDelete:CASCADE"`
}

func (SupplyOrderDTO) TableName() string {
	return "supply_orders"
}

type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplyOrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position          int       `gorm:"not null"`
	PartID            int64     `gorm:"not null"`
	RequestedQuantity int       `gorm:"not null"`
	SuppliedQuantity  int       `gorm:"not null"`
	Unit              string    `gorm:"type:varchar(32);not null"`
	Notes             string    `gorm:"type:text;not null"`
}

func (ItemDTO) TableName() string {
	return "supply_order_items"
}

func fromDomain(order *supplyorder.SupplyOrder) SupplyOrderDTO {
	s := order.Snapshot()
	orderID := s.ID.Bytes()

	items := make([]ItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, ItemDTO{
			ID:                item.ID().Bytes(),
			SupplyOrderID:     orderID,
			Position:          i,
			PartID:            item.PartID(),
			RequestedQuantity: item.RequestedQuantity(),
			SuppliedQuantity:  item.SuppliedQuantity(),
			Unit:              item.Unit(),
			Notes:             item.Notes(),
		})
	}

	return SupplyOrderDTO{
		ID:                      orderID,
		OrderNumber:             s.Number,
		SourceControlOrderID:    s.SourceControlOrderID.Bytes(),
		SourceType:              s.SourceType.String(),
		RequestingWorkstationID: s.RequestingWorkstationID.Int64(),
		SupplyWorkstationID:     s.SupplyWorkstationID.Int64(),
		Status:                  s.Status.String(),
		Priority:                s.Priority.String(),
		NeededBy:                s.NeededBy,
		FulfilledAt:             s.FulfilledAt,
		RejectedAt:              s.RejectedAt,
		CancelledAt:             s.CancelledAt,
		Notes:                   s.Notes,
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
		Items:                   items,
	}
}

func toDomain(dto SupplyOrderDTO) (*supplyorder.SupplyOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sourceID, err := kernel.UUIDFromBytes(dto.SourceControlOrderID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*supplyorder.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := supplyorder.RestoreItem(
			itemID, itemDTO.PartID, itemDTO.RequestedQuantity, itemDTO.SuppliedQuantity, itemDTO.Unit, itemDTO.Notes,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return supplyorder.RestoreSupplyOrder(supplyorder.Snapshot{
		ID:                      id,
		Number:                  dto.OrderNumber,
		SourceControlOrderID:    sourceID,
		SourceType:              controlorder.Type(dto.SourceType),
		RequestingWorkstationID: kernel.WorkstationID(dto.RequestingWorkstationID),
		SupplyWorkstationID:     kernel.WorkstationID(dto.SupplyWorkstationID),
		Status:                  supplyorder.Status(dto.Status),
		Items:                   items,
		Priority:                kernel.Priority(dto.Priority),
		NeededBy:                utc(dto.NeededBy),
		FulfilledAt:             utc(dto.FulfilledAt),
		RejectedAt:              utc(dto.RejectedAt),
		CancelledAt:             utc(dto.CancelledAt),
		Notes:                   dto.Notes,
		CreatedAt:               dto.CreatedAt.UTC(),
		UpdatedAt:               dto.UpdatedAt.UTC(),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
