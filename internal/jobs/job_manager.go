package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	boardCountsWarmupJob *BoardCountsWarmupJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	boardCountsHandler queries.GetBoardCountsQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		boardCountsWarmupJob: NewBoardCountsWarmupJob(boardCountsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.boardCountsWarmupJob.Start(); err != nil {
		return fmt.Errorf("failed to start board counts warmup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.boardCountsWarmupJob.Stop()
}
