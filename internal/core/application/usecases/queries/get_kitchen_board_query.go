package queries

import (
	"errors"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var ErrGetKitchenBoardQueryIsNotConstructed = errors.New(
	"GetKitchenBoardQuery must be created via NewGetKitchenBoardQuery constructor",
)

// GetKitchenBoardQuery retrieves the four-bucket kitchen board projection.
// Dashboards poll it periodically; the board may be stale by up to one poll
// interval.
type GetKitchenBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetKitchenBoardQuery creates a query for the board projection. This is
// a parameterless query over the live order set.
func NewGetKitchenBoardQuery() GetKitchenBoardQuery {
	return GetKitchenBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetKitchenBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenBoardQueryIsNotConstructed)
}

// GetKitchenBoardQueryResponse carries the projection plus per-bucket counts
// for the dashboard header.
type GetKitchenBoardQueryResponse struct {
	Board  services.Board
	Counts services.BoardCounts
}
