package commands

import (
	"context"
	"fmt"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/pkg/errs"
)

// SyncDeliveryCommandHandler runs an on-demand mirror of the nightly batch
// sync for a single delivery round. A Pending delivery gets its sub-delivery
// statuses pulled, a WaitingForDataSet delivery gets its result polled; every
// other status has nothing to sync and is rejected.
type SyncDeliveryCommandHandler struct {
	uowFactory   UoWFactory
	synchronizer Synchronizer
}

// NewSyncDeliveryCommandHandler creates a handler for on-demand syncs.
func NewSyncDeliveryCommandHandler(uowFactory UoWFactory, synchronizer Synchronizer) SyncDeliveryCommandHandler {
	return SyncDeliveryCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: synchronizer,
	}
}

// Handle processes the on-demand sync command.
func (h SyncDeliveryCommandHandler) Handle(ctx context.Context, command SyncDeliveryCommand) error {
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

	info, err := dataDelivery.FindInfo(command.DeliveryInfoID())
	if err != nil {
		return err
	}

	switch info.Status() {
	case delivery.StatusPending:
		err = h.synchronizer.SyncSubDeliveryStatuses(ctx, info)
	case delivery.StatusWaitingForDataSet:
		err = h.synchronizer.SyncDeliveryInfoResult(ctx, info)
	default:
		return errs.NewAccessForbiddenError(
			fmt.Sprintf("delivery in status %s cannot be synced", info.Status()),
		)
	}
	if err != nil {
		return err
	}

	if err := deliveryRepo.UpdateDeliveryInfo(ctx, command.ProposalID(), info); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
