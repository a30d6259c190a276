package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/services"
)

// boardCountsCacheKey holds the cached counts JSON; every poller shares it.
const boardCountsCacheKey = "fulfillment:board:counts"

// boardCountsCacheTTL keeps badge counts a little fresher than the 30s board
// poll so the warmup job can re-prime between polls.
const boardCountsCacheTTL = 10 * time.Second

// GetBoardCountsQueryHandler serves the dashboard badge counts. Counts are
// cached in Redis because every open dashboard polls them; the store is only
// hit on a cache miss, and a background job re-primes the key. Like the full
// board, a failure degrades to zero counts rather than failing the request.
type GetBoardCountsQueryHandler struct {
	db        *gorm.DB
	cache     *redis.Client
	projector services.KitchenBoardProjector
	log       *slog.Logger
}

// NewGetBoardCountsQueryHandler creates a handler for the counts query.
func NewGetBoardCountsQueryHandler(db *gorm.DB, cache *redis.Client, log *slog.Logger) GetBoardCountsQueryHandler {
	return GetBoardCountsQueryHandler{
		db:        db,
		cache:     cache,
		projector: services.NewKitchenBoardProjector(0),
		log:       log.With("component", "board_counts_query"),
	}
}

// Handle returns the current counts, from cache when possible.
func (h GetBoardCountsQueryHandler) Handle(ctx context.Context, query GetBoardCountsQuery) (services.BoardCounts, error) {
	if err := query.Validate(); err != nil {
		return services.BoardCounts{}, err
	}

	if cached, err := h.cache.Get(ctx, boardCountsCacheKey).Bytes(); err == nil {
		var counts services.BoardCounts
		if err = json.Unmarshal(cached, &counts); err == nil {
			return counts, nil
		}
		h.log.Warn("discarding malformed cached counts", "error", err)
	}

	counts, err := h.Refresh(ctx)
	if err != nil {
		h.log.Error("count query failed, serving zero counts", "error", err)
		return services.BoardCounts{}, nil
	}
	return counts, nil
}

// Refresh recomputes the counts from the store and re-primes the cache. The
// warmup job calls it on a schedule; a cache write failure does not fail the
// refresh.
func (h GetBoardCountsQueryHandler) Refresh(ctx context.Context) (services.BoardCounts, error) {
	now := time.Now().UTC()
	tickets, err := loadBoardTickets(ctx, h.db, now)
	if err != nil {
		return services.BoardCounts{}, err
	}

	counts := h.projector.Count(tickets, now)

	payload, err := json.Marshal(counts)
	if err != nil {
		return services.BoardCounts{}, err
	}
	if err = h.cache.Set(ctx, boardCountsCacheKey, payload, boardCountsCacheTTL).Err(); err != nil {
		h.log.Warn("failed to prime counts cache", "error", err)
	}

	return counts, nil
}
