package commands

import (
	"errors"

	"datadelivery/internal/core/domain/model/actor"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/guard"
)

var ErrSetDmsVoteCommandIsNotConstructed = errors.New(
	"SetDmsVoteCommand must be created via NewSetDmsVoteCommand constructor",
)

// SetDmsVoteCommand records the management site's acceptance decision for a
// proposal's data delivery. Only Accepted and Denied are valid votes; the
// pending zero state cannot be voted back in.
type SetDmsVoteCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	vote       delivery.AcceptanceStatus
	actor      actor.Actor

	guard guard.ConstructorGuard
}

// NewSetDmsVoteCommand creates a command carrying a management-site vote.
// Validates the proposal ID, the vote value, and the acting user.
func NewSetDmsVoteCommand(
	proposalID kernel.UUID,
	vote delivery.AcceptanceStatus,
	voter actor.Actor,
) (SetDmsVoteCommand, error) {
	command := SetDmsVoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProposalID(proposalID),
		command.setVote(vote),
		command.setActor(voter),
	); err != nil {
		return SetDmsVoteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetDmsVoteCommandIsNotConstructed if validation fails.
func (c SetDmsVoteCommand) Validate() error {
	return c.guard.Validate(ErrSetDmsVoteCommandIsNotConstructed)
}

// ProposalID returns the research proposal identifier.
func (c SetDmsVoteCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// Vote returns the acceptance decision.
func (c SetDmsVoteCommand) Vote() delivery.AcceptanceStatus {
	return c.vote
}

// Actor returns the voting user.
func (c SetDmsVoteCommand) Actor() actor.Actor {
	return c.actor
}

func (c *SetDmsVoteCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}

func (c *SetDmsVoteCommand) setVote(vote delivery.AcceptanceStatus) error {
	if err := vote.ValidateVote(); err != nil {
		return err
	}

	c.vote = vote
	return nil
}

func (c *SetDmsVoteCommand) setActor(voter actor.Actor) error {
	if err := voter.Validate(); err != nil {
		return err
	}

	c.actor = voter
	return nil
}
