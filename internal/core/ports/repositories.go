// Package ports defines the contracts between the application core and the
// infrastructure: repositories bound to a unit of work and the outbound
// collaborators (inventory, scheduler, control order endpoint, sequences,
// event bus).
package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/domain/model/warehouseorder"
)

// CustomerOrderRepository persists customer orders with their items.
// Get and GetByNumber return *errs.ObjectNotFoundError for unknown keys.
type CustomerOrderRepository interface {
	Add(ctx context.Context, aggregate *customerorder.CustomerOrder) error
	Update(ctx context.Context, aggregate *customerorder.CustomerOrder) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*customerorder.CustomerOrder, error)
	GetByNumber(ctx context.Context, number string) (*customerorder.CustomerOrder, error)

	// Find lists orders, optionally narrowed to a workstation and a status.
	Find(ctx context.Context, filter CustomerOrderFilter) ([]*customerorder.CustomerOrder, error)
}

type CustomerOrderFilter struct {
	WorkstationID *kernel.WorkstationID
	Status        *customerorder.Status
}

// WarehouseOrderRepository persists warehouse orders with their items.
type WarehouseOrderRepository interface {
	Add(ctx context.Context, aggregate *warehouseorder.WarehouseOrder) error
	Update(ctx context.Context, aggregate *warehouseorder.WarehouseOrder) error
	Get(ctx context.Context, id kernel.UUID) (*warehouseorder.WarehouseOrder, error)
	GetByNumber(ctx context.Context, number string) (*warehouseorder.WarehouseOrder, error)

	// ExistsForCustomerOrder reports whether any warehouse order references
	// the customer order. Referenced customer orders cannot be deleted.
	ExistsForCustomerOrder(ctx context.Context, customerOrderID kernel.UUID) (bool, error)

	Find(ctx context.Context, filter WarehouseOrderFilter) ([]*warehouseorder.WarehouseOrder, error)
}

type WarehouseOrderFilter struct {
	CustomerOrderID         *kernel.UUID
	FulfillingWorkstationID *kernel.WorkstationID
	Status                  *warehouseorder.Status
}

// ProductionOrderRepository persists production orders.
type ProductionOrderRepository interface {
	Add(ctx context.Context, aggregate *productionorder.ProductionOrder) error
	Update(ctx context.Context, aggregate *productionorder.ProductionOrder) error
	Get(ctx context.Context, id kernel.UUID) (*productionorder.ProductionOrder, error)
	GetByNumber(ctx context.Context, number string) (*productionorder.ProductionOrder, error)
	Find(ctx context.Context, filter ProductionOrderFilter) ([]*productionorder.ProductionOrder, error)

	// FindInFlight returns orders with a schedule whose status the scheduler
	// may still change: SUBMITTED, SCHEDULED or IN_PRODUCTION.
	FindInFlight(ctx context.Context) ([]*productionorder.ProductionOrder, error)

	// FindAwaitingSynthesis returns SUBMITTED or SCHEDULED orders with a
	// schedule whose control orders have not been synthesized yet.
	FindAwaitingSynthesis(ctx context.Context) ([]*productionorder.ProductionOrder, error)
}

type ProductionOrderFilter struct {
	CustomerOrderID  *kernel.UUID
	WarehouseOrderID *kernel.UUID
	Status           *productionorder.Status
}

// ControlOrderRepository persists production and assembly control orders.
type ControlOrderRepository interface {
	Add(ctx context.Context, aggregate *controlorder.ControlOrder) error
	Update(ctx context.Context, aggregate *controlorder.ControlOrder) error
	Get(ctx context.Context, id kernel.UUID) (*controlorder.ControlOrder, error)
	GetByNumber(ctx context.Context, number string) (*controlorder.ControlOrder, error)
	Find(ctx context.Context, filter ControlOrderFilter) ([]*controlorder.ControlOrder, error)
}

type ControlOrderFilter struct {
	Type              *controlorder.Type
	WorkstationID     *kernel.WorkstationID
	Status            *controlorder.Status
	ProductionOrderID *kernel.UUID
}

// SupplyOrderRepository persists supply orders with their items.
type SupplyOrderRepository interface {
	Add(ctx context.Context, aggregate *supplyorder.SupplyOrder) error
	Update(ctx context.Context, aggregate *supplyorder.SupplyOrder) error
	Get(ctx context.Context, id kernel.UUID) (*supplyorder.SupplyOrder, error)
	GetByNumber(ctx context.Context, number string) (*supplyorder.SupplyOrder, error)
	Find(ctx context.Context, filter SupplyOrderFilter) ([]*supplyorder.SupplyOrder, error)
}

type SupplyOrderFilter struct {
	RequestingWorkstationID *kernel.WorkstationID
	SupplyWorkstationID     *kernel.WorkstationID
	Status                  *supplyorder.Status
	SourceControlOrderID    *kernel.UUID
	SourceType              *controlorder.Type
}
