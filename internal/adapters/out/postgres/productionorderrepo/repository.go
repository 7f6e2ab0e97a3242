package productionorderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/productionorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

type GormProductionOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductionOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormProductionOrderRepository) Add(ctx context.Context, aggregate *productionorder.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductionOrderRepository) Update(ctx context.Context, aggregate *productionorder.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductionOrderDTO{ID: dto.ID}).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("productionOrderId", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*productionorder.ProductionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "productionOrderId", id, "id = ?", id.Bytes())
}

func (r *GormProductionOrderRepository) GetByNumber(
	ctx context.Context,
	number string,
) (*productionorder.ProductionOrder, error) {
	return r.first(ctx, "orderNumber", number, "order_number = ?", number)
}

func (r *GormProductionOrderRepository) Find(
	ctx context.Context,
	filter ports.ProductionOrderFilter,
) ([]*productionorder.ProductionOrder, error) {
	query := r.db.WithContext(ctx)
	if filter.CustomerOrderID != nil {
		query = query.Where("customer_order_id = ?", filter.CustomerOrderID.Bytes())
	}
	if filter.WarehouseOrderID != nil {
		query = query.Where("warehouse_order_id = ?", filter.WarehouseOrderID.Bytes())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	return r.find(query.Order("created_at DESC"))
}

func (r *GormProductionOrderRepository) FindInFlight(ctx context.Context) ([]*productionorder.ProductionOrder, error) {
	query := r.db.WithContext(ctx).
		Where("schedule_id <> ''").
		Where("status IN ?", statuses(productionorder.Submitted, productionorder.Scheduled, productionorder.InProduction)).
		Order("created_at")
	return r.find(query)
}

func (r *GormProductionOrderRepository) FindAwaitingSynthesis(ctx context.Context) ([]*productionorder.ProductionOrder, error) {
	query := r.db.WithContext(ctx).
		Where("schedule_id <> ''").
		Where("NOT control_orders_synthesized").
		Where("status IN ?", statuses(productionorder.Submitted, productionorder.Scheduled)).
		Order("created_at")
	return r.find(query)
}

func (r *GormProductionOrderRepository) find(query *gorm.DB) ([]*productionorder.ProductionOrder, error) {
	var dtos []ProductionOrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*productionorder.ProductionOrder, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *GormProductionOrderRepository) first(
	ctx context.Context,
	param string,
	key any,
	where string,
	args ...any,
) (*productionorder.ProductionOrder, error) {
	var dto ProductionOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, append([]any{where}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}

func statuses(in ...productionorder.Status) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.String())
	}
	return out
}
