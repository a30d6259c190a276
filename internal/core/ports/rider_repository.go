// Package ports defines repository interfaces for the fulfillment domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider and attaches the storage-assigned id.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by id. An unknown id yields
	// errs.ErrObjectNotFound.
	Get(ctx context.Context, id int64) (*rider.Rider, error)

	// GetAllActive retrieves the riders currently on the assignment roster.
	GetAllActive(ctx context.Context) ([]*rider.Rider, error)
}
