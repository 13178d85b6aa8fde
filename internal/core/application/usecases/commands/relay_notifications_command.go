package commands

import (
	"errors"

	"datadelivery/internal/pkg/guard"
)

var ErrRelayNotificationsCommandIsNotConstructed = errors.New(
	"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
)

// RelayNotificationsCommand triggers one relay pass over the notification
// outbox, delivering undispatched events to the notification system.
type RelayNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewRelayNotificationsCommand creates a new command to trigger the outbox
// relay. This is a parameterless command.
func NewRelayNotificationsCommand() RelayNotificationsCommand {
	return RelayNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRelayNotificationsCommandIsNotConstructed if validation fails.
func (c *RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(
		ErrRelayNotificationsCommandIsNotConstructed,
	)
}
