// Package postgres implements the unit of work over GORM. Repositories
// obtained from a unit of work share its transaction once Begin was called
// and use the base connection otherwise. Aggregates written through them are
// tracked; after a successful Commit their domain events are handed to the
// event publisher.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.WarehouseOrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork is meant for one goroutine and one business operation.
package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"manufacturing/internal/adapters/out/postgres/controlorderrepo"
	"manufacturing/internal/adapters/out/postgres/customerorderrepo"
	"manufacturing/internal/adapters/out/postgres/productionorderrepo"
	"manufacturing/internal/adapters/out/postgres/supplyorderrepo"
	"manufacturing/internal/adapters/out/postgres/warehouseorderrepo"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
)

// eventSource is implemented by every order aggregate.
type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates one UnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory wires the connection and the publisher committed
// events go to. A nil publisher drops events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *zap.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit-of-work")),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.create()
}

func (f *GormUnitOfWorkFactory) create() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes the transaction and publishes the domain events of every
// tracked aggregate. Publishing failures are logged; the data is already
// committed at that point.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction. Without an open transaction it returns
// gorm.ErrInvalidTransaction, which deferred rollbacks after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) CustomerOrderRepository() ports.CustomerOrderRepository {
	return customerorderrepo.NewGormCustomerOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) WarehouseOrderRepository() ports.WarehouseOrderRepository {
	return warehouseorderrepo.NewGormWarehouseOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductionOrderRepository() ports.ProductionOrderRepository {
	return productionorderrepo.NewGormProductionOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ControlOrderRepository() ports.ControlOrderRepository {
	return controlorderrepo.NewGormControlOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SupplyOrderRepository() ports.SupplyOrderRepository {
	return supplyorderrepo.NewGormSupplyOrderRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories for every aggregate they write.
// An aggregate written twice is tracked once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	var events []kernel.DomainEvent
	var sources []eventSource
	for _, t := range tracked {
		source, ok := t.Aggregate.(eventSource)
		if !ok {
			continue
		}
		events = append(events, source.DomainEvents()...)
		sources = append(sources, source)
	}
	if len(events) == 0 {
		return
	}

	if uow.publisher != nil {
		if err := uow.publisher.Publish(context.WithoutCancel(ctx), events...); err != nil {
			uow.logger.Error("publish domain events", zap.Int("events", len(events)), zap.Error(err))
		}
	}
	for _, source := range sources {
		source.ClearDomainEvents()
	}
}
