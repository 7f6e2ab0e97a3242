// Package warehouseorderrepo maps warehouse orders and their lines to the
// warehouse_orders and warehouse_order_items tables.
package warehouseorderrepo

import (
	"time"

	"github.com/google/uuid"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/warehouseorder"
)

type WarehouseOrderDTO struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber             string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerOrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestingWorkstationID int64     `gorm:"not null"`
	FulfillingWorkstationID int64     `gorm:"not null;index"`
	Status                  string    `gorm:"type:varchar(32);not null"`
	TriggerScenario         string    `gorm:"type:varchar(64);not null"`
	Notes                   string    `gorm:"type:text;not null"`
	OrderDate               time.Time `gorm:"not null"`
	CreatedAt               time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt               time.Time `gorm:"not null;autoUpdateTime:false"`
	Items                   []ItemDTO `gorm:"foreignKey:WarehouseOrderID;constraint:OnDelete:CASCADE"`
}

func (WarehouseOrderDTO) TableName() string {
	return "warehouse_orders"
}

type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseOrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position          int       `gorm:"not null"`
	ItemID            int64     `gorm:"not null"`
	ItemName          string    `gorm:"type:varchar(255);not null"`
	ItemType          string    `gorm:"type:varchar(64);not null"`
	RequestedQuantity int       `gorm:"not null"`
	FulfilledQuantity int       `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "warehouse_order_items"
}

func fromDomain(order *warehouseorder.WarehouseOrder) WarehouseOrderDTO {
	orderID := order.ID().Bytes()
	items := make([]ItemDTO, 0, len(order.Items()))
	for i, item := range order.Items() {
		items = append(items, ItemDTO{
			ID:                item.ID().Bytes(),
			WarehouseOrderID:  orderID,
			Position:          i,
			ItemID:            item.ItemID(),
			ItemName:          item.ItemName(),
			ItemType:          item.ItemType(),
			RequestedQuantity: item.RequestedQuantity(),
			FulfilledQuantity: item.FulfilledQuantity(),
		})
	}

	return WarehouseOrderDTO{
		ID:                      orderID,
		OrderNumber:             order.Number(),
		CustomerOrderID:         order.CustomerOrderID().Bytes(),
		RequestingWorkstationID: order.RequestingWorkstationID().Int64(),
		FulfillingWorkstationID: order.FulfillingWorkstationID().Int64(),
		Status:                  order.Status().String(),
		TriggerScenario:         order.TriggerScenario(),
		Notes:                   order.Notes(),
		OrderDate:               order.OrderDate(),
		CreatedAt:               order.CreatedAt(),
		UpdatedAt:               order.UpdatedAt(),
		Items:                   items,
	}
}

func toDomain(dto WarehouseOrderDTO) (*warehouseorder.WarehouseOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerOrderID, err := kernel.UUIDFromBytes(dto.CustomerOrderID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*warehouseorder.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := warehouseorder.RestoreItem(
			itemID, itemDTO.ItemID, itemDTO.ItemName, itemDTO.ItemType,
			itemDTO.RequestedQuantity, itemDTO.FulfilledQuantity,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return warehouseorder.RestoreWarehouseOrder(
		id,
		dto.OrderNumber,
		customerOrderID,
		kernel.WorkstationID(dto.RequestingWorkstationID),
		kernel.WorkstationID(dto.FulfillingWorkstationID),
		warehouseorder.Status(dto.Status),
		items,
		dto.TriggerScenario,
		dto.Notes,
		dto.OrderDate.UTC(),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
