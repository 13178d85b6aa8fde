package commands

import (
	"context"

	"datadelivery/internal/core/domain/model/delivery"
)

// CreateDataDeliveryCommandHandler opens the delivery lifecycle for a
// proposal. The underlying store rejects a second container for the same
// proposal with errs.ErrObjectAlreadyExists.
type CreateDataDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDataDeliveryCommandHandler creates a handler for opening delivery
// lifecycles.
func NewCreateDataDeliveryCommandHandler(uowFactory UoWFactory) CreateDataDeliveryCommandHandler {
	return CreateDataDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the create data delivery command.
// Builds a fresh aggregate with a pending acceptance vote and persists it.
func (h CreateDataDeliveryCommandHandler) Handle(ctx context.Context, command CreateDataDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	dataDelivery, err := delivery.NewDataDelivery(command.ProposalID(), command.ManagementSiteID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Add(ctx, dataDelivery); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
