package queries

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/services"
)

// GetKitchenBoardQueryHandler builds the kitchen board from the live order
// set. The board is best-effort display: a storage failure degrades to an
// empty board with zero counts rather than failing the request, and the
// failure is logged for the operator.
type GetKitchenBoardQueryHandler struct {
	db        *gorm.DB
	projector services.KitchenBoardProjector
	log       *slog.Logger
}

// NewGetKitchenBoardQueryHandler creates a handler for board queries.
// servedLimit bounds the served bucket's display size.
func NewGetKitchenBoardQueryHandler(db *gorm.DB, servedLimit int, log *slog.Logger) GetKitchenBoardQueryHandler {
	return GetKitchenBoardQueryHandler{
		db:        db,
		projector: services.NewKitchenBoardProjector(servedLimit),
		log:       log.With("component", "kitchen_board_query"),
	}
}

// Handle executes the query. Elapsed times are derived against the current
// clock on every call, never cached.
func (h GetKitchenBoardQueryHandler) Handle(ctx context.Context, query GetKitchenBoardQuery) (GetKitchenBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetKitchenBoardQueryResponse{}, err
	}

	now := time.Now().UTC()
	tickets, err := loadBoardTickets(ctx, h.db, now)
	if err != nil {
		h.log.Error("board projection failed, serving empty board", "error", err)
		return GetKitchenBoardQueryResponse{}, nil
	}

	return GetKitchenBoardQueryResponse{
		Board:  h.projector.Project(tickets, now),
		Counts: h.projector.Count(tickets, now),
	}, nil
}
