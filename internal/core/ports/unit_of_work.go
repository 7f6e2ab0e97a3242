package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command or job tick.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned by it
// share the transaction started by Begin. Aggregates written through them are
// tracked and their domain events are published after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	CustomerOrderRepository() CustomerOrderRepository
	WarehouseOrderRepository() WarehouseOrderRepository
	ProductionOrderRepository() ProductionOrderRepository
	ControlOrderRepository() ControlOrderRepository
	SupplyOrderRepository() SupplyOrderRepository
}
