package commands

import (
	"errors"

	"datadelivery/internal/pkg/guard"
)

var ErrSyncPendingDeliveriesCommandIsNotConstructed = errors.New(
	"SyncPendingDeliveriesCommand must be created via NewSyncPendingDeliveriesCommand constructor",
)

// SyncPendingDeliveriesCommand triggers the nightly reconciliation of every
// pending automated delivery with the coordination system.
type SyncPendingDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncPendingDeliveriesCommand creates a new command to trigger the
// pending-delivery batch sync. This is a parameterless command.
func NewSyncPendingDeliveriesCommand() SyncPendingDeliveriesCommand {
	return SyncPendingDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncPendingDeliveriesCommandIsNotConstructed if validation fails.
func (c *SyncPendingDeliveriesCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncPendingDeliveriesCommandIsNotConstructed,
	)
}
