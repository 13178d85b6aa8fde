package jobs

import (
	"context"
	"log/slog"
	"time"

	"datadelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SubDeliverySyncJob manages the nightly reconciliation of pending automated
// deliveries. Runs daily at 02:00 in the configured timezone.
type SubDeliverySyncJob struct {
	handler commands.SyncPendingDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSubDeliverySyncJob creates a new job for the sub-delivery batch sync.
// Uses SyncPendingDeliveriesCommandHandler to reconcile sub-delivery statuses
// once per night.
func NewSubDeliverySyncJob(
	handler commands.SyncPendingDeliveriesCommandHandler,
	location *time.Location,
	logger *slog.Logger,
) *SubDeliverySyncJob {
	return &SubDeliverySyncJob{
		handler: handler,
		cron:    cron.New(cron.WithLocation(location)),
		logger:  logger.With("component", "sub_delivery_sync_job"),
	}
}

// Start schedules the sub-delivery sync job to run daily at 02:00.
func (j *SubDeliverySyncJob) Start() error {
	_, err := j.cron.AddFunc("0 2 * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncPendingDeliveriesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Sub-delivery sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sub-delivery sync job started (running daily at 02:00)")
	return nil
}

// Stop stops the sub-delivery sync job.
func (j *SubDeliverySyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Sub-delivery sync job stopped")
}
