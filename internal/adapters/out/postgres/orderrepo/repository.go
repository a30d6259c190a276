package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and payments and attaches the
// generated id to the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AttachID(dto.ID); err != nil {
		return err
	}
	for i, item := range aggregate.Items() {
		if err := item.AttachID(dto.Items[i].ID); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The order row is written conditionally on
// the status still matching the status the aggregate was read with; a
// concurrent transition trips the guard and nothing is committed.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.PersistedStatus().String()).
		Updates(map[string]any{
			"status":         dto.Status,
			"rider_id":       dto.RiderID,
			"total_amount":   dto.TotalAmount,
			"payment_status": dto.PaymentStatus,
			"notes":          dto.Notes,
			"updated_at":     dto.UpdatedAt,
			"completed_at":   dto.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.ID())
	}

	if err := r.syncItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// syncItems reconciles the item rows with the aggregate's live item set:
// surviving lines are saved in place, removed lines are deleted. Payments are
// immutable after creation and never touched here.
func (r *GormOrderRepository) syncItems(ctx context.Context, dto OrderDTO) error {
	kept := make([]int64, 0, len(dto.Items))
	for _, item := range dto.Items {
		item := item
		if err := r.db.WithContext(ctx).Save(&item).Error; err != nil {
			return err
		}
		kept = append(kept, item.ID)
	}

	return r.db.WithContext(ctx).
		Where("order_id = ? AND id NOT IN ?", dto.ID, kept).
		Delete(&ItemDTO{}).Error
}

// Get retrieves an order by id, including its items and payments.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveDeliveries returns the number of in-flight deliveries per rider:
// assigned orders that are ready to collect or on the way.
func (r *GormOrderRepository) CountActiveDeliveries(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT rider_id, COUNT(*)
		FROM orders
		WHERE order_type = ?
		  AND rider_id IS NOT NULL
		  AND status IN (?, ?)
		GROUP BY rider_id
	`, order.Delivery.String(), order.ReadyToCollect.String(), order.OnTheWay.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make(map[int64]int)
	for rows.Next() {
		var riderID int64
		var count int
		if err = rows.Scan(&riderID, &count); err != nil {
			return nil, err
		}
		deliveries[riderID] = count
	}

	return deliveries, rows.Err()
}
