package commands

import (
	"errors"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var ErrConcludeResearchCommandIsNotConstructed = errors.New(
	"ConcludeResearchCommand must be created via NewConcludeResearchCommand constructor",
)

// ConcludeResearchCommand signals that the researcher has started the
// analysis phase, closing out every delivery round of the proposal.
type ConcludeResearchCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConcludeResearchCommand creates a command concluding a proposal's
// deliveries.
func NewConcludeResearchCommand(proposalID kernel.UUID) (ConcludeResearchCommand, error) {
	command := ConcludeResearchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setProposalID(proposalID); err != nil {
		return ConcludeResearchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConcludeResearchCommandIsNotConstructed if validation fails.
func (c ConcludeResearchCommand) Validate() error {
	return c.guard.Validate(ErrConcludeResearchCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c ConcludeResearchCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

func (c *ConcludeResearchCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}
