package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// BoardCountsWarmupJob keeps the kitchen board counts cache warm.
// Runs every five seconds to recompute the counts and re-prime the cache.
type BoardCountsWarmupJob struct {
	handler queries.GetBoardCountsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBoardCountsWarmupJob creates a new job for warming the counts cache.
// Uses GetBoardCountsQueryHandler's refresh path so the job and the endpoint
// share one recompute implementation.
func NewBoardCountsWarmupJob(handler queries.GetBoardCountsQueryHandler, logger *slog.Logger) *BoardCountsWarmupJob {
	return &BoardCountsWarmupJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "board_counts_warmup_job"),
	}
}

// Start begins the warmup job to run every five seconds.
func (j *BoardCountsWarmupJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		if _, err := j.handler.Refresh(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Board counts warmup job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Board counts warmup job started (running every five seconds)")
	return nil
}

// Stop stops the warmup job.
func (j *BoardCountsWarmupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Board counts warmup job stopped")
}
