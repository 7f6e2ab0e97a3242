package supplyorderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/supplyorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

type GormSupplyOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSupplyOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSupplyOrderRepository {
	return &GormSupplyOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormSupplyOrderRepository) Add(ctx context.Context, aggregate *supplyorder.SupplyOrder) error {
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

// Update rewrites the order row and the supplied quantity of every part.
func (r *GormSupplyOrderRepository) Update(ctx context.Context, aggregate *supplyorder.SupplyOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&SupplyOrderDTO{ID: dto.ID}).
		Select("*").
		Omit(clause.Associations, "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("supplyOrderId", aggregate.ID())
	}

	if len(dto.Items) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"supplied_quantity"}),
		}).Create(&dto.Items).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSupplyOrderRepository) Get(ctx context.Context, id kernel.UUID) (*supplyorder.SupplyOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "supplyOrderId", id, "id = ?", id.Bytes())
}

func (r *GormSupplyOrderRepository) GetByNumber(ctx context.Context, number string) (*supplyorder.SupplyOrder, error) {
	return r.first(ctx, "orderNumber", number, "order_number = ?", number)
}

func (r *GormSupplyOrderRepository) Find(
	ctx context.Context,
	filter ports.SupplyOrderFilter,
) ([]*supplyorder.SupplyOrder, error) {
	query := r.db.WithContext(ctx).Preload("Items", byPosition)
	if filter.RequestingWorkstationID != nil {
		query = query.Where("requesting_workstation_id = ?", filter.RequestingWorkstationID.Int64())
	}
	if filter.SupplyWorkstationID != nil {
		query = query.Where("supply_workstation_id = ?", filter.SupplyWorkstationID.Int64())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.SourceControlOrderID != nil {
		query = query.Where("source_control_order_id = ?", filter.SourceControlOrderID.Bytes())
	}
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", filter.SourceType.String())
	}

	var dtos []SupplyOrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*supplyorder.SupplyOrder, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *GormSupplyOrderRepository) first(
	ctx context.Context,
	param string,
	key any,
	where string,
	args ...any,
) (*supplyorder.SupplyOrder, error) {
	var dto SupplyOrderDTO
	err := r.db.WithContext(ctx).Preload("Items", byPosition).First(&dto, append([]any{where}, args...)...).Error
	if err != nil {
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
