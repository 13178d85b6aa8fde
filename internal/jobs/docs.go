// Package jobs provides scheduled background tasks for the delivery engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the delivery lifecycle requires.
//
// # Available Jobs
//
// 1. ResultSyncJob - Runs daily at 01:00 to pick up published result URLs for deliveries waiting on their dataset
// 2. SubDeliverySyncJob - Runs daily at 02:00 to reconcile sub-delivery statuses of pending automated deliveries
// 3. OutboxRelayJob - Runs every minute to push undispatched notification events to the notification system
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncPendingHandler, syncResultsHandler, relayHandler, location, logger)
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
// The two sync jobs run on a daily schedule in the configured timezone, an
// hour apart so result polling finishes before sub-delivery reconciliation
// starts. Both take a distributed lock before touching the store, so running
// multiple replicas is safe. The outbox relay runs every minute and needs no
// lock: marking an event dispatched is idempotent.
//
// # Error Handling
//
// Batch sync failures are isolated per delivery: one failing item is logged
// and counted, the rest of the batch proceeds. A replica that does not win
// the lock skips the run silently.
package jobs
