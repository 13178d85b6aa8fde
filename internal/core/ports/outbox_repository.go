package ports

import (
	"context"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/notification"
)

// OutboxRepository defines the persistence contract for the notification
// outbox. Events are appended within the same transaction as the state
// transition that raised them and relayed asynchronously.
type OutboxRepository interface {
	// Append stores a new event awaiting dispatch.
	Append(ctx context.Context, event *notification.Event) error

	// FetchUndispatched retrieves up to limit events that were not dispatched
	// yet, oldest first.
	FetchUndispatched(ctx context.Context, limit int) ([]*notification.Event, error)

	// MarkDispatched records a successful dispatch of the event.
	MarkDispatched(ctx context.Context, eventID kernel.UUID) error
}
