package controlorderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"manufacturing/internal/core/domain/model/controlorder"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

type GormControlOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormControlOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormControlOrderRepository {
	return &GormControlOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormControlOrderRepository) Add(ctx context.Context, aggregate *controlorder.ControlOrder) error {
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

func (r *GormControlOrderRepository) Update(ctx context.Context, aggregate *controlorder.ControlOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ControlOrderDTO{ID: dto.ID}).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("controlOrderId", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormControlOrderRepository) Get(ctx context.Context, id kernel.UUID) (*controlorder.ControlOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "controlOrderId", id, "id = ?", id.Bytes())
}

func (r *GormControlOrderRepository) GetByNumber(ctx context.Context, number string) (*controlorder.ControlOrder, error) {
	return r.first(ctx, "controlOrderNumber", number, "order_number = ?", number)
}

// Find lists matching orders ordered by target start, earliest first.
func (r *GormControlOrderRepository) Find(
	ctx context.Context,
	filter ports.ControlOrderFilter,
) ([]*controlorder.ControlOrder, error) {
	query := r.db.WithContext(ctx)
	if filter.Type != nil {
		query = query.Where("order_type = ?", filter.Type.String())
	}
	if filter.WorkstationID != nil {
		query = query.Where("assigned_workstation_id = ?", filter.WorkstationID.Int64())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ProductionOrderID != nil {
		query = query.Where("production_order_id = ?", filter.ProductionOrderID.Bytes())
	}

	var dtos []ControlOrderDTO
	if err := query.Order("target_start NULLS LAST").Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*controlorder.ControlOrder, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *GormControlOrderRepository) first(
	ctx context.Context,
	param string,
	key any,
	where string,
	args ...any,
) (*controlorder.ControlOrder, error) {
	var dto ControlOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, append([]any{where}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}
