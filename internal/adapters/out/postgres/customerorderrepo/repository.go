package customerorderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"manufacturing/internal/core/domain/model/customerorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

type GormCustomerOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCustomerOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerOrderRepository {
	return &GormCustomerOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCustomerOrderRepository) Add(ctx context.Context, aggregate *customerorder.CustomerOrder) error {
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

// Update rewrites the order row. Line items are immutable and left alone.
func (r *GormCustomerOrderRepository) Update(ctx context.Context, aggregate *customerorder.CustomerOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CustomerOrderDTO{ID: dto.ID}).
		Select("*").
		Omit(clause.Associations, "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customerOrderId", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CustomerOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customerOrderId", id)
	}
	return nil
}

func (r *GormCustomerOrderRepository) Get(ctx context.Context, id kernel.UUID) (*customerorder.CustomerOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "customerOrderId", id, "id = ?", id.Bytes())
}

func (r *GormCustomerOrderRepository) GetByNumber(ctx context.Context, number string) (*customerorder.CustomerOrder, error) {
	return r.first(ctx, "orderNumber", number, "order_number = ?", number)
}

func (r *GormCustomerOrderRepository) Find(
	ctx context.Context,
	filter ports.CustomerOrderFilter,
) ([]*customerorder.CustomerOrder, error) {
	query := r.db.WithContext(ctx).Preload("Items", byPosition)
	if filter.WorkstationID != nil {
		query = query.Where("workstation_id = ?", filter.WorkstationID.Int64())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var dtos []CustomerOrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*customerorder.CustomerOrder, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *GormCustomerOrderRepository) first(
	ctx context.Context,
	param string,
	key any,
	where string,
	args ...any,
) (*customerorder.CustomerOrder, error) {
	var dto CustomerOrderDTO
	if err := r.db.WithContext(ctx).Preload("Items", byPosition).First(&dto, append([]any{where}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
