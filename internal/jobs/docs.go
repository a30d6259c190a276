// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. BoardCountsWarmupJob - Recomputes the kitchen board counts and primes the
// cache before the previous entry expires, so dashboard badge reads almost
// never fall through to the database.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(boardCountsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The warmup job uses the cron expression "*/5 * * * * *" (every five
// seconds), half the counts cache TTL, so a fresh entry is always in place
// before the old one lapses.
//
// # Error Handling
//
// Warmup failures are logged and retried on the next tick; the counts
// endpoint itself degrades to zero counts, so a failing warmup never takes
// the dashboard down.
package jobs
