package commands

import (
	"errors"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var (
	ErrCreateDataDeliveryCommandIsNotConstructed = errors.New(
		"CreateDataDeliveryCommand must be created via NewCreateDataDeliveryCommand constructor",
	)
	ErrManagementSiteIDIsRequired = errors.New("management site id is required")
)

// CreateDataDeliveryCommand represents a request to open the data delivery
// lifecycle for a research proposal. One proposal holds at most one delivery
// container; repeated creation is a conflict.
//
// Example:
//
//	cmd, err := NewCreateDataDeliveryCommand(proposalID, "DMS-01")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDataDeliveryCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create data delivery: %w", err)
//	}
type CreateDataDeliveryCommand struct { //nolint:recvcheck //using for validation
	proposalID       kernel.UUID
	managementSiteID string

	guard guard.ConstructorGuard
}

// NewCreateDataDeliveryCommand creates a command to open a proposal's delivery
// lifecycle. Validates that the proposal ID is valid and the management site
// reference is not empty.
func NewCreateDataDeliveryCommand(proposalID kernel.UUID, managementSiteID string) (CreateDataDeliveryCommand, error) {
	command := CreateDataDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setManagementSiteID(managementSiteID),
	); err != nil {
		return CreateDataDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDataDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDataDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDataDeliveryCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c CreateDataDeliveryCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// ManagementSiteID returns the managing data-management-site reference.
func (c CreateDataDeliveryCommand) ManagementSiteID() string {
	return c.managementSiteID
}

func (c *CreateDataDeliveryCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *CreateDataDeliveryCommand) setManagementSiteID(managementSiteID string) error {
	if managementSiteID == "" {
		return ErrManagementSiteIDIsRequired
	}

	c.managementSiteID = managementSiteID
	return nil
}
