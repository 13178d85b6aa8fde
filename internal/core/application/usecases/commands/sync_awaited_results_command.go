package commands

import (
	"errors"

	"datadelivery/internal/pkg/guard"
)

var ErrSyncAwaitedResultsCommandIsNotConstructed = errors.New(
	"SyncAwaitedResultsCommand must be created via NewSyncAwaitedResultsCommand constructor",
)

// SyncAwaitedResultsCommand triggers the nightly poll for published result
// URLs of deliveries waiting for their dataset.
type SyncAwaitedResultsCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncAwaitedResultsCommand creates a new command to trigger the
// result batch sync. This is a parameterless command.
func NewSyncAwaitedResultsCommand() SyncAwaitedResultsCommand {
	return SyncAwaitedResultsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncAwaitedResultsCommandIsNotConstructed if validation fails.
func (c *SyncAwaitedResultsCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncAwaitedResultsCommandIsNotConstructed,
	)
}
