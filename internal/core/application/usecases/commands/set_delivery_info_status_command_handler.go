package commands

import (
	"context"
	"fmt"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/core/ports"
	"datadelivery/internal/pkg/errs"
)

// SetDeliveryInfoStatusCommandHandler applies interactive lifecycle
// transitions. A requested WaitingForDataSet or Pending forwards the
// delivery: the dataset is released in the coordination system, the received
// datasets are synced once immediately, and a data-ready event is appended.
// A requested Canceled cancels. Every other requested status is forbidden.
type SetDeliveryInfoStatusCommandHandler struct {
	uowFactory   UoWFactory
	coordination ports.CoordinationClient
	synchronizer Synchronizer
}

// NewSetDeliveryInfoStatusCommandHandler creates a handler for interactive
// status transitions.
func NewSetDeliveryInfoStatusCommandHandler(
	uowFactory UoWFactory,
	coordination ports.CoordinationClient,
	synchronizer Synchronizer,
) SetDeliveryInfoStatusCommandHandler {
	return SetDeliveryInfoStatusCommandHandler{
		uowFactory:   uowFactory,
		coordination: coordination,
		synchronizer: synchronizer,
	}
}

// Handle processes the status change command.
func (h SetDeliveryInfoStatusCommandHandler) Handle(ctx context.Context, command SetDeliveryInfoStatusCommand) error {
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

	switch command.RequestedStatus() {
	case delivery.StatusWaitingForDataSet, delivery.StatusPending:
		if err := h.forward(ctx, uow, command, info); err != nil {
			return err
		}
	case delivery.StatusCanceled:
		if err := info.Cancel(); err != nil {
			return err
		}
	default:
		return errs.NewAccessForbiddenError(
			fmt.Sprintf("status %s cannot be requested directly", command.RequestedStatus()),
		)
	}

	if err := deliveryRepo.UpdateDeliveryInfo(ctx, command.ProposalID(), info); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h SetDeliveryInfoStatusCommandHandler) forward(
	ctx context.Context,
	uow UoW,
	command SetDeliveryInfoStatusCommand,
	info *delivery.DeliveryInfo,
) error {
	if err := info.Forward(); err != nil {
		return err
	}

	if err := h.coordination.ReleaseDataSet(ctx, info.BusinessKey()); err != nil {
		return err
	}

	if err := h.synchronizer.SyncSubDeliveryStatuses(ctx, info); err != nil {
		return err
	}

	locations := make([]string, 0, len(info.SubDeliveries()))
	for _, sub := range info.SubDeliveries() {
		locations = append(locations, sub.LocationID())
	}

	event, err := notification.NewDataReadyEvent(command.ProposalID(), info.ResultURL(), locations)
	if err != nil {
		return err
	}

	return uow.OutboxRepository().Append(ctx, event)
}
