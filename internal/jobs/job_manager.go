package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"datadelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	subDeliverySyncJob *SubDeliverySyncJob
	resultSyncJob      *ResultSyncJob
	outboxRelayJob     *OutboxRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	syncPendingHandler commands.SyncPendingDeliveriesCommandHandler,
	syncResultsHandler commands.SyncAwaitedResultsCommandHandler,
	relayHandler commands.RelayNotificationsCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		subDeliverySyncJob: NewSubDeliverySyncJob(syncPendingHandler, location, logger),
		resultSyncJob:      NewResultSyncJob(syncResultsHandler, location, logger),
		outboxRelayJob:     NewOutboxRelayJob(relayHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.resultSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start result sync job: %w", err)
	}

	if err := jm.subDeliverySyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.resultSyncJob.Stop()
		return fmt.Errorf("failed to start sub-delivery sync job: %w", err)
	}

	if err := jm.outboxRelayJob.Start(); err != nil {
		jm.subDeliverySyncJob.Stop()
		jm.resultSyncJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
	jm.subDeliverySyncJob.Stop()
	jm.resultSyncJob.Stop()
}
