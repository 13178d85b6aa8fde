package commands

import (
	"errors"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var ErrRateSubDeliveryCommandIsNotConstructed = errors.New(
	"RateSubDeliveryCommand must be created via NewRateSubDeliveryCommand constructor",
)

// RateSubDeliveryCommand records the management site's verdict on one
// received sub-delivery. Only Accepted and Repeated are valid ratings; an
// invalid rating is rejected here, before any store access.
type RateSubDeliveryCommand struct { //nolint:recvcheck //using for validation
	proposalID     kernel.UUID
	deliveryInfoID kernel.UUID
	subDeliveryID  kernel.UUID
	rating         delivery.SubStatus

	guard guard.ConstructorGuard
}

// NewRateSubDeliveryCommand creates a command carrying a sub-delivery rating.
func NewRateSubDeliveryCommand(
	proposalID kernel.UUID,
	deliveryInfoID kernel.UUID,
	subDeliveryID kernel.UUID,
	rating delivery.SubStatus,
) (RateSubDeliveryCommand, error) {
	command := RateSubDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setDeliveryInfoID(deliveryInfoID),
		command.setSubDeliveryID(subDeliveryID),
		command.setRating(rating),
	); err != nil {
		return RateSubDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRateSubDeliveryCommandIsNotConstructed if validation fails.
func (c RateSubDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateSubDeliveryCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c RateSubDeliveryCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// DeliveryInfoID returns the delivery round identifier.
func (c RateSubDeliveryCommand) DeliveryInfoID() kernel.UUID {
	return c.deliveryInfoID
}

// SubDeliveryID returns the rated sub-delivery identifier.
func (c RateSubDeliveryCommand) SubDeliveryID() kernel.UUID {
	return c.subDeliveryID
}

// Rating returns the verdict, Accepted or Repeated.
func (c RateSubDeliveryCommand) Rating() delivery.SubStatus {
	return c.rating
}

func (c *RateSubDeliveryCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *RateSubDeliveryCommand) setDeliveryInfoID(deliveryInfoID kernel.UUID) error {
	if err := deliveryInfoID.Validate(); err != nil {
		return err
	}

	c.deliveryInfoID = deliveryInfoID
	return nil
}

func (c *RateSubDeliveryCommand) setSubDeliveryID(subDeliveryID kernel.UUID) error {
	if err := subDeliveryID.Validate(); err != nil {
		return err
	}

	c.subDeliveryID = subDeliveryID
	return nil
}

func (c *RateSubDeliveryCommand) setRating(rating delivery.SubStatus) error {
	if err := rating.ValidateRating(); err != nil {
		return err
	}

	c.rating = rating
	return nil
}
