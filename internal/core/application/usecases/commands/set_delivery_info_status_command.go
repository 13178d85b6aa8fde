package commands

import (
	"errors"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var ErrSetDeliveryInfoStatusCommandIsNotConstructed = errors.New(
	"SetDeliveryInfoStatusCommand must be created via NewSetDeliveryInfoStatusCommand constructor",
)

// SetDeliveryInfoStatusCommand requests an interactive lifecycle transition
// for one delivery round. Which transitions a caller may request is decided
// by the handler, not here; the command only checks the status is a known
// value.
type SetDeliveryInfoStatusCommand struct { //nolint:recvcheck //using for validation
	proposalID      kernel.UUID
	deliveryInfoID  kernel.UUID
	requestedStatus delivery.Status

	guard guard.ConstructorGuard
}

// NewSetDeliveryInfoStatusCommand creates a command requesting a status change.
func NewSetDeliveryInfoStatusCommand(
	proposalID kernel.UUID,
	deliveryInfoID kernel.UUID,
	requestedStatus delivery.Status,
) (SetDeliveryInfoStatusCommand, error) {
	command := SetDeliveryInfoStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setDeliveryInfoID(deliveryInfoID),
		command.setRequestedStatus(requestedStatus),
	); err != nil {
		return SetDeliveryInfoStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetDeliveryInfoStatusCommandIsNotConstructed if validation fails.
func (c SetDeliveryInfoStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryInfoStatusCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c SetDeliveryInfoStatusCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// DeliveryInfoID returns the delivery round identifier.
func (c SetDeliveryInfoStatusCommand) DeliveryInfoID() kernel.UUID {
	return c.deliveryInfoID
}

// RequestedStatus returns the status the caller asked for.
func (c SetDeliveryInfoStatusCommand) RequestedStatus() delivery.Status {
	return c.requestedStatus
}

func (c *SetDeliveryInfoStatusCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *SetDeliveryInfoStatusCommand) setDeliveryInfoID(deliveryInfoID kernel.UUID) error {
	if err := deliveryInfoID.Validate(); err != nil {
		return err
	}

	c.deliveryInfoID = deliveryInfoID
	return nil
}

func (c *SetDeliveryInfoStatusCommand) setRequestedStatus(requestedStatus delivery.Status) error {
	if err := requestedStatus.Validate(); err != nil {
		return err
	}

	c.requestedStatus = requestedStatus
	return nil
}
