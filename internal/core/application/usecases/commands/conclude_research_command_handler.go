package commands

import (
	"context"

	"datadelivery/internal/core/domain/model/delivery"
)

// ConcludeResearchCommandHandler closes out every delivery round of a
// proposal when the researcher starts analyzing. Rounds with available
// results are marked fetched, still-open rounds are canceled, and rounds
// already in a terminal state are left untouched. Each changed round is
// persisted individually.
type ConcludeResearchCommandHandler struct {
	uowFactory UoWFactory
}

// NewConcludeResearchCommandHandler creates a handler for concluding
// proposals.
func NewConcludeResearchCommandHandler(uowFactory UoWFactory) ConcludeResearchCommandHandler {
	return ConcludeResearchCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the conclude command.
func (h ConcludeResearchCommandHandler) Handle(ctx context.Context, command ConcludeResearchCommand) error {
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

	for _, info := range dataDelivery.Infos() {
		var transitionErr error

		switch {
		case info.Status() == delivery.StatusResultsAvailable:
			transitionErr = info.MarkFetched()
		case info.Status().IsTerminal():
			continue
		default:
			transitionErr = info.Cancel()
		}
		if transitionErr != nil {
			return transitionErr
		}

		if err := deliveryRepo.UpdateDeliveryInfo(ctx, command.ProposalID(), info); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
