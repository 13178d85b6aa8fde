package commands

import (
	"context"
	"log/slog"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/ports"
)

// SubDeliverySyncLockName is the distributed-lock key guarding the nightly
// sub-delivery reconciliation across replicas.
const SubDeliverySyncLockName = "delivery:sync:sub-deliveries"

// SyncPendingDeliveriesCommandHandler reconciles every pending automated
// delivery with the coordination system. Only delivery rounds that are
// exactly Pending and not manual entries are synced; each item fails or
// succeeds independently.
type SyncPendingDeliveriesCommandHandler struct {
	runner       batchSyncRunner
	synchronizer Synchronizer
}

// NewSyncPendingDeliveriesCommandHandler creates a handler for the nightly
// sub-delivery batch sync.
func NewSyncPendingDeliveriesCommandHandler(
	uowFactory UoWFactory,
	synchronizer Synchronizer,
	locks ports.LockService,
	logger *slog.Logger,
) SyncPendingDeliveriesCommandHandler {
	return SyncPendingDeliveriesCommandHandler{
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
func (h SyncPendingDeliveriesCommandHandler) Handle(ctx context.Context, command SyncPendingDeliveriesCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.runner.run(
		ctx,
		SubDeliverySyncLockName,
		delivery.StatusPending,
		true,
		h.synchronizer.SyncSubDeliveryStatuses,
	)
}
