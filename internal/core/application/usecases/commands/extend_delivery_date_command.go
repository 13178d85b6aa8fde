package commands

import (
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var (
	ErrExtendDeliveryDateCommandIsNotConstructed = errors.New(
		"ExtendDeliveryDateCommand must be created via NewExtendDeliveryDateCommand constructor",
	)
	ErrNewDeliveryDateIsRequired = errors.New("new delivery date is required")
)

// ExtendDeliveryDateCommand moves a delivery round's requested date further
// into the future. Whether the new date actually is an extension is checked
// against the stored date by the domain, not here.
type ExtendDeliveryDateCommand struct { //nolint:recvcheck //using for validation
	proposalID     kernel.UUID
	deliveryInfoID kernel.UUID
	newDate        time.Time

	guard guard.ConstructorGuard
}

// NewExtendDeliveryDateCommand creates a command carrying the new date.
func NewExtendDeliveryDateCommand(
	proposalID kernel.UUID,
	deliveryInfoID kernel.UUID,
	newDate time.Time,
) (ExtendDeliveryDateCommand, error) {
	command := ExtendDeliveryDateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setDeliveryInfoID(deliveryInfoID),
		command.setNewDate(newDate),
	); err != nil {
		return ExtendDeliveryDateCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExtendDeliveryDateCommandIsNotConstructed if validation fails.
func (c ExtendDeliveryDateCommand) Validate() error {
	return c.guard.Validate(ErrExtendDeliveryDateCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c ExtendDeliveryDateCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// DeliveryInfoID returns the delivery round identifier.
func (c ExtendDeliveryDateCommand) DeliveryInfoID() kernel.UUID {
	return c.deliveryInfoID
}

// NewDate returns the requested new delivery date.
func (c ExtendDeliveryDateCommand) NewDate() time.Time {
	return c.newDate
}

func (c *ExtendDeliveryDateCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *ExtendDeliveryDateCommand) setDeliveryInfoID(deliveryInfoID kernel.UUID) error {
	if err := deliveryInfoID.Validate(); err != nil {
		return err
	}

	c.deliveryInfoID = deliveryInfoID
	return nil
}

func (c *ExtendDeliveryDateCommand) setNewDate(newDate time.Time) error {
	if newDate.IsZero() {
		return ErrNewDeliveryDateIsRequired
	}

	c.newDate = newDate
	return nil
}
