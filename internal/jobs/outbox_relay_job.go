package jobs

import (
	"context"
	"log/slog"

	"datadelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob manages the delivery of notification events waiting in the
// outbox. Runs every minute.
type OutboxRelayJob struct {
	handler commands.RelayNotificationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxRelayJob creates a new job for the outbox relay.
// Uses RelayNotificationsCommandHandler to push undispatched events to the
// notification system every minute.
func NewOutboxRelayJob(handler commands.RelayNotificationsCommandHandler, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the outbox relay job to run every minute.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRelayNotificationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every minute)")
	return nil
}

// Stop stops the outbox relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
