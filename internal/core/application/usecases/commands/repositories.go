// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, applies the
// change through the aggregates and commits.
package commands

import (
	"context"

	"manufacturing/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerOrderRepoFactory interface {
		CustomerOrderRepository() ports.CustomerOrderRepository
	}

	WarehouseOrderRepoFactory interface {
		WarehouseOrderRepository() ports.WarehouseOrderRepository
	}

	ProductionOrderRepoFactory interface {
		ProductionOrderRepository() ports.ProductionOrderRepository
	}

	ControlOrderRepoFactory interface {
		ControlOrderRepository() ports.ControlOrderRepository
	}

	SupplyOrderRepoFactory interface {
		SupplyOrderRepository() ports.SupplyOrderRepository
	}

	// ProductionOrderUoW is used by the production planning handlers.
	ProductionOrderUoW interface {
		TxManager
		ProductionOrderRepoFactory
	}

	ProductionOrderUoWFactory interface {
		Create() ProductionOrderUoW
	}

	// ControlOrderUoW covers control orders and the supply orders they raise.
	ControlOrderUoW interface {
		TxManager
		ControlOrderRepoFactory
		SupplyOrderRepoFactory
	}

	ControlOrderUoWFactory interface {
		Create() ControlOrderUoW
	}

	SupplyOrderUoW interface {
		TxManager
		SupplyOrderRepoFactory
	}

	SupplyOrderUoWFactory interface {
		Create() SupplyOrderUoW
	}

	// UoW spans every aggregate. Customer and warehouse order handlers use it
	// because fulfillment closes customer orders and cascades production orders
	// in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   warehouseRepo := uow.WarehouseOrderRepository()
	//   customerRepo := uow.CustomerOrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CustomerOrderRepoFactory
		WarehouseOrderRepoFactory
		ProductionOrderRepoFactory
		ControlOrderRepoFactory
		SupplyOrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
