package jobs

import (
	"context"
	"log/slog"
	"time"

	"datadelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ResultSyncJob manages the nightly polling of coordination results for
// deliveries waiting on their dataset. Runs daily at 01:00 in the configured
// timezone, before the sub-delivery sync.
type ResultSyncJob struct {
	handler commands.SyncAwaitedResultsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewResultSyncJob creates a new job for the result batch sync.
// Uses SyncAwaitedResultsCommandHandler to pick up published result URLs once
// per night.
func NewResultSyncJob(
	handler commands.SyncAwaitedResultsCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *ResultSyncJob {
	return &ResultSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithLocation(location)),
		logger:  logger.With("component", "result_sync_job"),
	}
}

// Start schedules the result sync job to run daily at 01:00.
func (j *ResultSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 1 * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncAwaitedResultsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Result sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Result sync job started (running daily at 01:00)")
	return nil
}

// Stop stops the result sync job.
func (j *ResultSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Result sync job stopped")
}
