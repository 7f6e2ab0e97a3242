package warehouseorderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/warehouseorder"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
)

type GormWarehouseOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormWarehouseOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWarehouseOrderRepository {
	return &GormWarehouseOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormWarehouseOrderRepository) Add(ctx context.Context, aggregate *warehouseorder.WarehouseOrder) error {
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

// Update rewrites the order row and the fulfilled quantity of every line.
func (r *GormWarehouseOrderRepository) Update(ctx context.Context, aggregate *warehouseorder.WarehouseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&WarehouseOrderDTO{ID: dto.ID}).
		Select("*").
		Omit(clause.Associations, "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("warehouseOrderId", aggregate.ID())
	}

	if len(dto.Items) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"fulfilled_quantity"}),
		}).Create(&dto.Items).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWarehouseOrderRepository) Get(ctx context.Context, id kernel.UUID) (*warehouseorder.WarehouseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "warehouseOrderId", id, "id = ?", id.Bytes())
}

func (r *GormWarehouseOrderRepository) GetByNumber(
	ctx context.Context,
	number string,
) (*warehouseorder.WarehouseOrder, error) {
	return r.first(ctx, "orderNumber", number, "order_number = ?", number)
}

func (r *GormWarehouseOrderRepository) ExistsForCustomerOrder(ctx context.Context, customerOrderID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WarehouseOrderDTO{}).
		Where("customer_order_id = ?", customerOrderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormWarehouseOrderRepository) Find(
	ctx context.Context,
	filter ports.WarehouseOrderFilter,
) ([]*warehouseorder.WarehouseOrder, error) {
	query := r.db.WithContext(ctx).Preload("Items", byPosition)
	if filter.CustomerOrderID != nil {
		query = query.Where("customer_order_id = ?", filter.CustomerOrderID.Bytes())
	}
	if filter.FulfillingWorkstationID != nil {
		query = query.Where("fulfilling_workstation_id = ?", filter.FulfillingWorkstationID.Int64())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var dtos []WarehouseOrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*warehouseorder.WarehouseOrder, 0, len(dtos))
	for _, dto := range dtos {
		order, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *GormWarehouseOrderRepository) first(
	ctx context.Context,
	param string,
	key any,
	where string,
	args ...any,
) (*warehouseorder.WarehouseOrder, error) {
	var dto WarehouseOrderDTO
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
