package commands

import (
	"errors"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var ErrSyncDeliveryCommandIsNotConstructed = errors.New(
	"SyncDeliveryCommand must be created via NewSyncDeliveryCommand constructor",
)

// SyncDeliveryCommand requests an immediate, on-demand synchronization of one
// delivery round with the coordination system, outside the nightly batch
// windows.
type SyncDeliveryCommand struct { //nolint:recvcheck //using for validation
	proposalID     kernel.UUID
	deliveryInfoID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSyncDeliveryCommand creates a command requesting an on-demand sync.
func NewSyncDeliveryCommand(proposalID, deliveryInfoID kernel.UUID) (SyncDeliveryCommand, error) {
	command := SyncDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setDeliveryInfoID(deliveryInfoID),
	); err != nil {
		return SyncDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncDeliveryCommandIsNotConstructed if validation fails.
func (c SyncDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSyncDeliveryCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c SyncDeliveryCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// DeliveryInfoID returns the delivery round identifier.
func (c SyncDeliveryCommand) DeliveryInfoID() kernel.UUID {
	return c.deliveryInfoID
}

func (c *SyncDeliveryCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *SyncDeliveryCommand) setDeliveryInfoID(deliveryInfoID kernel.UUID) error {
	if err := deliveryInfoID.Validate(); err != nil {
		return err
	}

	c.deliveryInfoID = deliveryInfoID
	return nil
}
