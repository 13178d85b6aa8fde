package commands

import (
	"context"

	"datadelivery/internal/pkg/errs"
)

// SetDmsVoteCommandHandler records a management-site vote on a data delivery.
// Only an actor assigned to the delivery's management site may vote; anyone
// else is rejected with errs.ErrAccessForbidden before any state change.
type SetDmsVoteCommandHandler struct {
	uowFactory UoWFactory
}

// NewSetDmsVoteCommandHandler creates a handler for management-site votes.
func NewSetDmsVoteCommandHandler(uowFactory UoWFactory) SetDmsVoteCommandHandler {
	return SetDmsVoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the vote command.
// Loads the aggregate, checks the actor's assigned location against the
// stored management site, applies the vote, and persists the aggregate.
func (h SetDmsVoteCommandHandler) Handle(ctx context.Context, command SetDmsVoteCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	dataDelivery, err := deliveryRepo.Get(ctx, command.ProposalID())
	if err != nil {
		return err
	}

	if command.Actor().LocationID() != dataDelivery.ManagementSiteID() {
		return errs.NewAccessForbiddenError("actor is not assigned to the managing data management site")
	}

	if err := dataDelivery.Vote(command.Vote()); err != nil {
		return err
	}

	if err := deliveryRepo.Update(ctx, dataDelivery); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
