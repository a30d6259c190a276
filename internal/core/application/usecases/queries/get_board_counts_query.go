package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetBoardCountsQueryIsNotConstructed = errors.New(
	"GetBoardCountsQuery must be created via NewGetBoardCountsQuery constructor",
)

// GetBoardCountsQuery retrieves only the per-bucket counts for dashboard
// badges. Counts exclude cancelled orders and orders on the way.
type GetBoardCountsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBoardCountsQuery creates a counts-only board query.
func NewGetBoardCountsQuery() GetBoardCountsQuery {
	return GetBoardCountsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBoardCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardCountsQueryIsNotConstructed)
}
