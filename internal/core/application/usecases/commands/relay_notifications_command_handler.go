package commands

import (
	"context"
	"log/slog"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/ports"
)

// relayBatchSize caps how many events one relay pass picks up. Leftovers are
// delivered by the next pass.
const relayBatchSize = 100

// RelayNotificationsCommandHandler delivers undispatched outbox events to the
// notification system. Dispatch is best-effort: an event that fails stays in
// the outbox and is retried on the next pass, and one failing event never
// blocks the others.
type RelayNotificationsCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewRelayNotificationsCommandHandler creates a handler for the outbox relay.
func NewRelayNotificationsCommandHandler(
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes one relay pass.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, command RelayNotificationsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	events, err := h.uowFactory.Create().OutboxRepository().FetchUndispatched(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := h.dispatcher.Dispatch(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "Failed to dispatch notification event",
				"eventId", event.ID().String(),
				"kind", string(event.Kind()),
				"error", err)
			continue
		}

		if err := h.markDispatched(ctx, event.ID()); err != nil {
			h.logger.ErrorContext(ctx, "Failed to mark notification event dispatched",
				"eventId", event.ID().String(),
				"error", err)
		}
	}

	return nil
}

func (h RelayNotificationsCommandHandler) markDispatched(ctx context.Context, eventID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().MarkDispatched(ctx, eventID); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
