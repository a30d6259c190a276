package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and payments and
	// attaches the storage-assigned id to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// conditional on the order's status still matching the status the
	// aggregate was restored with; a concurrent transition surfaces as
	// errs.ErrConcurrentModification and commits nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by id, including its items and
	// payments. An unknown id yields errs.ErrObjectNotFound.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// CountActiveDeliveries returns, per rider id, the number of delivery
	// orders currently assigned to that rider and not yet delivered or
	// cancelled. Used by the dispatcher to pick the least-loaded rider.
	CountActiveDeliveries(ctx context.Context) (map[int64]int, error)
}
