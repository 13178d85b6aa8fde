package commands

import (
	"errors"
	"time"

	"datadelivery/internal/core/domain/model/actor"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var (
	ErrInitDeliveryInfoCommandIsNotConstructed = errors.New(
		"InitDeliveryInfoCommand must be created via NewInitDeliveryInfoCommand constructor",
	)
	ErrDeliveryNameIsRequired          = errors.New("delivery name is required")
	ErrDeliveryDateIsRequired          = errors.New("delivery date is required")
	ErrSubDeliveryLocationsAreRequired = errors.New("at least one sub-delivery location is required")
)

// InitDeliveryInfoCommand represents a request to initiate one delivery round
// for a proposal. The caller chooses between the automated path, which opens a
// task in the external coordination system, and the manual path, which records
// an already-completed delivery.
//
// Example:
//
//	cmd, err := NewInitDeliveryInfoCommand(
//	    proposalID, kernel.NewUUID(), "delivery for project alpha",
//	    requestedDate, []string{"DIC-01", "DIC-02"}, false, requester,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery request: %w", err)
//	}
type InitDeliveryInfoCommand struct { //nolint:recvcheck //using for validation
	proposalID             kernel.UUID
	deliveryInfoID         kernel.UUID
	name                   string
	deliveryDate           time.Time
	subDeliveryLocationIDs []string
	manualEntry            bool
	actor                  actor.Actor

	guard guard.ConstructorGuard
}

// NewInitDeliveryInfoCommand creates a command to initiate a delivery round.
// The delivery info ID is chosen by the caller so it can be returned to the
// client before the handler runs.
func NewInitDeliveryInfoCommand(
	proposalID kernel.UUID,
	deliveryInfoID kernel.UUID,
	name string,
	deliveryDate time.Time,
	subDeliveryLocationIDs []string,
	manualEntry bool,
	requester actor.Actor,
) (InitDeliveryInfoCommand, error) {
	command := InitDeliveryInfoCommand{
		manualEntry: manualEntry,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setDeliveryInfoID(deliveryInfoID),
		command.setName(name),
		command.setDeliveryDate(deliveryDate),
		command.setSubDeliveryLocationIDs(subDeliveryLocationIDs),
		command.setActor(requester),
	); err != nil {
		return InitDeliveryInfoCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrInitDeliveryInfoCommandIsNotConstructed if validation fails.
func (c InitDeliveryInfoCommand) Validate() error {
	return c.guard.Validate(ErrInitDeliveryInfoCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c InitDeliveryInfoCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// DeliveryInfoID returns the identifier for the new delivery round.
func (c InitDeliveryInfoCommand) DeliveryInfoID() kernel.UUID {
	return c.deliveryInfoID
}

// Name returns the human-readable delivery name.
func (c InitDeliveryInfoCommand) Name() string {
	return c.name
}

// DeliveryDate returns the requested delivery date.
func (c InitDeliveryInfoCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// SubDeliveryLocationIDs returns the supplying integration-center references.
func (c InitDeliveryInfoCommand) SubDeliveryLocationIDs() []string {
	return c.subDeliveryLocationIDs
}

// ManualEntry reports whether the delivery is recorded retroactively without
// coordination-system involvement.
func (c InitDeliveryInfoCommand) ManualEntry() bool {
	return c.manualEntry
}

// Actor returns the requesting user.
func (c InitDeliveryInfoCommand) Actor() actor.Actor {
	return c.actor
}

func (c *InitDeliveryInfoCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *InitDeliveryInfoCommand) setDeliveryInfoID(deliveryInfoID kernel.UUID) error {
	if err := deliveryInfoID.Validate(); err != nil {
		return err
	}

	c.deliveryInfoID = deliveryInfoID
	return nil
}

func (c *InitDeliveryInfoCommand) setName(name string) error {
	if name == "" {
		return ErrDeliveryNameIsRequired
	}

	c.name = name
	return nil
}

func (c *InitDeliveryInfoCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}

	c.deliveryDate = deliveryDate
	return nil
}

func (c *InitDeliveryInfoCommand) setSubDeliveryLocationIDs(locationIDs []string) error {
	if len(locationIDs) == 0 {
		return ErrSubDeliveryLocationsAreRequired
	}
	for _, locationID := range locationIDs {
		if locationID == "" {
			return ErrSubDeliveryLocationsAreRequired
		}
	}

	c.subDeliveryLocationIDs = locationIDs
	return nil
}

func (c *InitDeliveryInfoCommand) setActor(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}

	c.actor = requester
	return nil
}
