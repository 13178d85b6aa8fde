package commands

import (
	"context"
	"log/slog"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/ports"
)

// ResultSyncLockName is the distributed-lock key guarding the nightly result
// poll across replicas.
const ResultSyncLockName = "delivery:sync:results"

// SyncAwaitedResultsCommandHandler polls the coordination system for
// published result URLs of every non-manual delivery round belonging to a
// proposal with at least one round waiting for its dataset. Rounds in other
// states are rejected by the synchronizer and surface in the failure count
// rather than being silently skipped.
type SyncAwaitedResultsCommandHandler struct {
	runner       batchSyncRunner
	synchronizer Synchronizer
}

// NewSyncAwaitedResultsCommandHandler creates a handler for the nightly
// result batch sync.
func NewSyncAwaitedResultsCommandHandler(
	uowFactory UoWFactory,
	synchronizer Synchronizer,
	locks ports.LockService,
	logger *slog.Logger,
) SyncAwaitedResultsCommandHandler {
	return SyncAwaitedResultsCommandHandler{
		runner: batchSyncRunner{
			uowFactory: uowFactory,
			locks:      locks,
			logger:     logger,
		},
		synchronizer: synchronizer,
	}
}

// Handle processes the batch sync command.
// When another replica holds the lock the run exits immediately without
// touching the store or the coordination system.
func (h SyncAwaitedResultsCommandHandler) Handle(ctx context.Context, command SyncAwaitedResultsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.runner.run(
		ctx,
		ResultSyncLockName,
		delivery.StatusWaitingForDataSet,
		false,
		h.synchronizer.SyncDeliveryInfoResult,
	)
}
