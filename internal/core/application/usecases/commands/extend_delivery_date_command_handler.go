package commands

import (
	"context"

	"datadelivery/internal/core/ports"
)

// ExtendDeliveryDateCommandHandler moves a delivery round's date forward.
// The domain rejects any date that is not strictly after the stored one
// before the coordination system is contacted, so a bad request leaves the
// release window untouched. Manual entries carry no coordination task and
// only have their stored date changed.
type ExtendDeliveryDateCommandHandler struct {
	uowFactory   UoWFactory
	coordination ports.CoordinationClient
}

// NewExtendDeliveryDateCommandHandler creates a handler for date extensions.
func NewExtendDeliveryDateCommandHandler(
	uowFactory UoWFactory,
	coordination ports.CoordinationClient,
) ExtendDeliveryDateCommandHandler {
	return ExtendDeliveryDateCommandHandler{
		uowFactory:   uowFactory,
		coordination: coordination,
	}
}

// Handle processes the date extension command.
// The release window in the coordination system is extended exactly once,
// after the domain accepted the new date.
func (h ExtendDeliveryDateCommandHandler) Handle(ctx context.Context, command ExtendDeliveryDateCommand) error {
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

	if err := info.ExtendDate(command.NewDate()); err != nil {
		return err
	}

	if info.RequiresCoordination() {
		if err := h.coordination.ExtendReleaseWindow(ctx, info.BusinessKey(), command.NewDate()); err != nil {
			return err
		}
	}

	if err := deliveryRepo.UpdateDeliveryInfo(ctx, command.ProposalID(), info); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
