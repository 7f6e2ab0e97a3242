// Package customerorderrepo maps customer orders and their line items to the
// customer_orders and customer_order_items tables.
package customerorderrepo

import (
	"time"

	"github.com/google/uuid"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
)

type CustomerOrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	WorkstationID int64     `gorm:"not null;index"`
	Status        string    `gorm:"type:varchar(32);not null"`
	Notes         string    `gorm:"type:text;not null"`
	OrderDate     time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
	Items         []ItemDTO `gorm:"foreignKey:CustomerOrderID;constraint:OnDelete:CASCADE"`
}

func (CustomerOrderDTO) TableName() string {
	return "customer_orders"
}

type ItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position        int       `gorm:"not null"`
	ItemType        string    `gorm:"type:varchar(64);not null"`
	ItemID          int64     `gorm:"not null"`
	Quantity        int       `gorm:"not null"`
	Notes           string    `gorm:"type:text;not null"`
}

func (ItemDTO) TableName() string {
	return "customer_order_items"
}

func fromDomain(order *customerorder.CustomerOrder) CustomerOrderDTO {
	orderID := order.ID().Bytes()
	items := make([]ItemDTO, 0, len(order.Items()))
	for i, item := range order.Items() {
		items = append(items, ItemDTO{
			ID:              item.ID().Bytes(),
			CustomerOrderID: orderID,
			Position:        i,
			ItemType:        item.ItemType(),
			ItemID:          item.ItemID(),
			Quantity:        item.Quantity(),
			Notes:           item.Notes(),
		})
	}

	return CustomerOrderDTO{
		ID:            orderID,
		OrderNumber:   order.Number(),
		WorkstationID: order.WorkstationID().Int64(),
		Status:        order.Status().String(),
		Notes:         order.Notes(),
		OrderDate:     order.OrderDate(),
		CreatedAt:     order.CreatedAt(),
		UpdatedAt:     order.UpdatedAt(),
		Items:         items,
	}
}

func toDomain(dto CustomerOrderDTO) (*customerorder.CustomerOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*customerorder.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := customerorder.RestoreItem(itemID, itemDTO.ItemType, itemDTO.ItemID, itemDTO.Quantity, itemDTO.Notes)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return customerorder.RestoreCustomerOrder(
		id,
		dto.OrderNumber,
		kernel.WorkstationID(dto.WorkstationID),
		customerorder.Status(dto.Status),
		items,
		dto.Notes,
		dto.OrderDate.UTC(),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
