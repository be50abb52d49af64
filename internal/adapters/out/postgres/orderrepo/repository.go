package orderrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and all of its child rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Create(&rows.order).Error; err != nil {
		return err
	}
	if err := db.Create(&rows.items).Error; err != nil {
		return err
	}
	if err := db.Create(&rows.information).Error; err != nil {
		return err
	}
	if len(rows.paymentHistories) > 0 {
		if err := db.Create(&rows.paymentHistories).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row, upserts items and information, and inserts
// payment histories that are not stored yet. Deletion markers are written
// explicitly so that Restore round-trips.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := fromDomain(aggregate)
	db := r.db.WithContext(ctx).Unscoped().Session(&gorm.Session{})

	result := db.Model(&OrderDTO{}).Where("id = ?", rows.order.ID).Updates(map[string]any{
		"payment":         rows.order.Payment,
		"status":          rows.order.Status,
		"shipping_status": rows.order.ShippingStatus,
		"total_price":     rows.order.TotalPrice,
		"user_id":         rows.order.UserID,
		"updated_at":      rows.order.UpdatedAt,
		"deleted_at":      rows.order.DeletedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if len(rows.items) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "name", "price", "spec", "sku", "quantity", "status", "updated_at", "deleted_at",
			}),
		}).Create(&rows.items).Error
		if err != nil {
			return err
		}
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "phone", "email", "updated_at"}),
	}).Create(&rows.information).Error
	if err != nil {
		return err
	}

	if len(rows.paymentHistories) > 0 {
		err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows.paymentHistories).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order that is not soft-deleted.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the order row (SELECT ... FOR UPDATE) before loading it.
// The lock is held until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetIncludingDeleted ignores the deletion marker of the order.
func (r *GormOrderRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.WithContext(ctx).Unscoped(), id)
}

func (r *GormOrderRepository) load(ctx context.Context, orderQuery *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var rows aggregateRows
	if err := orderQuery.First(&rows.order, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	children := r.db.WithContext(ctx).Unscoped().Session(&gorm.Session{})
	if err := children.Where("order_id = ?", rows.order.ID).Order("position").Find(&rows.items).Error; err != nil {
		return nil, err
	}
	if err := children.Where("order_id = ?", rows.order.ID).Find(&rows.information).Error; err != nil {
		return nil, err
	}
	err := children.Where("order_id = ?", rows.order.ID).Order("created_at, id").Find(&rows.paymentHistories).Error
	if err != nil {
		return nil, err
	}

	return toDomain(rows)
}
