package commands

import (
	"context"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/notification"
)

// RateSubDeliveryCommandHandler records a sub-delivery rating through a
// targeted single-row update, so concurrent batch syncs on sibling rows are
// not overwritten. A Repeated rating additionally appends a data-return event
// asking the supplying location to deliver again.
type RateSubDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateSubDeliveryCommandHandler creates a handler for sub-delivery ratings.
func NewRateSubDeliveryCommandHandler(uowFactory UoWFactory) RateSubDeliveryCommandHandler {
	return RateSubDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command.
// The store resolves the (deliveryInfo, subDelivery) path and returns
// errs.ErrObjectNotFound when it does not exist.
func (h RateSubDeliveryCommandHandler) Handle(ctx context.Context, command RateSubDeliveryCommand) error {
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

	if err := deliveryRepo.UpdateSubDeliveryStatus(
		ctx,
		command.ProposalID(),
		command.DeliveryInfoID(),
		command.SubDeliveryID(),
		command.Rating(),
	); err != nil {
		return err
	}

	if command.Rating() == delivery.SubStatusRepeated {
		if err := h.appendDataReturnEvent(ctx, uow, command); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h RateSubDeliveryCommandHandler) appendDataReturnEvent(
	ctx context.Context, uow UoW, command RateSubDeliveryCommand,
) error {
	dataDelivery, err := uow.DeliveryRepository().Get(ctx, command.ProposalID())
	if err != nil {
		return err
	}

	info, err := dataDelivery.FindInfo(command.DeliveryInfoID())
	if err != nil {
		return err
	}

	event, err := notification.NewDataReturnEvent(command.ProposalID(), info.ResultURL())
	if err != nil {
		return err
	}

	return uow.OutboxRepository().Append(ctx, event)
}
