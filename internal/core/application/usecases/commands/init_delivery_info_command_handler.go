package commands

import (
	"context"

	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/location"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/core/domain/services"
	"datadelivery/internal/core/ports"
	"datadelivery/internal/pkg/errs"
)

// InitDeliveryInfoCommandHandler initiates a delivery round for a proposal.
// Resolves and gates every referenced location, checks the entry policy for
// the acting role, and then either opens a coordination task (automated path)
// or records a finished manual delivery. Automated initiations append a
// delivery-initiated event to the notification outbox in the same transaction.
type InitDeliveryInfoCommandHandler struct {
	uowFactory   UoWFactory
	proposals    ports.ProposalStore
	locations    ports.LocationDirectory
	coordination ports.CoordinationClient
}

// NewInitDeliveryInfoCommandHandler creates a handler for delivery initiation.
func NewInitDeliveryInfoCommandHandler(
	uowFactory UoWFactory,
	proposals ports.ProposalStore,
	locations ports.LocationDirectory,
	coordination ports.CoordinationClient,
) InitDeliveryInfoCommandHandler {
	return InitDeliveryInfoCommandHandler{
		uowFactory:   uowFactory,
		proposals:    proposals,
		locations:    locations,
		coordination: coordination,
	}
}

// Handle processes the delivery initiation command.
// Location gating happens before the entry-policy check, and both happen
// before any external call or store write, so a rejected request leaves no
// trace anywhere.
func (h InitDeliveryInfoCommandHandler) Handle(ctx context.Context, command InitDeliveryInfoCommand) error {
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

	managementSite, err := h.resolveAddressedLocation(ctx, dataDelivery.ManagementSiteID())
	if err != nil {
		return err
	}
	if !managementSite.IsManagementCenter() {
		return errs.NewAccessForbiddenError("managing location is not a data management center")
	}

	subDeliveries := make([]*delivery.SubDelivery, 0, len(command.SubDeliveryLocationIDs()))
	subAddresses := make([]string, 0, len(command.SubDeliveryLocationIDs()))
	for _, locationID := range command.SubDeliveryLocationIDs() {
		subLocation, err := h.resolveAddressedLocation(ctx, locationID)
		if err != nil {
			return err
		}
		if !subLocation.IsIntegrationCenter() {
			return errs.NewAccessForbiddenError("supplying location is not a data integration center")
		}

		sub, err := delivery.NewSubDelivery(kernel.NewUUID(), locationID)
		if err != nil {
			return err
		}

		subDeliveries = append(subDeliveries, sub)
		subAddresses = append(subAddresses, subLocation.Address())
	}

	entryMode := services.EntryAutomated
	if command.ManualEntry() {
		entryMode = services.EntryManual
	}
	if err := services.NewEntryPolicy().Authorize(entryMode, command.Actor().Role()); err != nil {
		return err
	}

	info, err := h.buildDeliveryInfo(ctx, command, dataDelivery, subDeliveries)
	if err != nil {
		return err
	}

	if err := deliveryRepo.AddDeliveryInfo(ctx, command.ProposalID(), info); err != nil {
		return err
	}

	if info.RequiresCoordination() {
		event, err := notification.NewDeliveryInitiatedEvent(command.ProposalID(), subAddresses)
		if err != nil {
			return err
		}
		if err := uow.OutboxRepository().Append(ctx, event); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h InitDeliveryInfoCommandHandler) buildDeliveryInfo(
	ctx context.Context,
	command InitDeliveryInfoCommand,
	dataDelivery *delivery.DataDelivery,
	subDeliveries []*delivery.SubDelivery,
) (*delivery.DeliveryInfo, error) {
	if command.ManualEntry() {
		return delivery.NewManualDeliveryInfo(
			command.DeliveryInfoID(),
			command.Name(),
			command.DeliveryDate(),
			dataDelivery.ManagementSiteID(),
			subDeliveries,
			command.DeliveryDate(),
		)
	}

	info, err := delivery.NewDeliveryInfo(
		command.DeliveryInfoID(),
		command.Name(),
		command.DeliveryDate(),
		dataDelivery.ManagementSiteID(),
		subDeliveries,
	)
	if err != nil {
		return nil, err
	}

	prop, err := h.proposals.GetProposal(ctx, command.ProposalID())
	if err != nil {
		return nil, err
	}

	integrationCenters := make([]string, 0, len(subDeliveries))
	for _, sub := range subDeliveries {
		integrationCenters = append(integrationCenters, sub.LocationID())
	}

	taskRef, err := h.coordination.CreateTask(ctx, ports.CreateTaskRequest{
		ProposalID:         command.ProposalID(),
		ProjectName:        prop.ProjectName(),
		ManagementSite:     dataDelivery.ManagementSiteID(),
		IntegrationCenters: integrationCenters,
		ResearcherEmails:   prop.ResearcherEmails(),
		RequestedDate:      command.DeliveryDate(),
	})
	if err != nil {
		return nil, err
	}

	if err := info.AssignCoordinationTask(taskRef.TaskID, taskRef.BusinessKey); err != nil {
		return nil, err
	}

	return info, nil
}

func (h InitDeliveryInfoCommandHandler) resolveAddressedLocation(
	ctx context.Context, locationID string,
) (*location.Location, error) {
	loc, err := h.locations.ResolveLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !loc.HasAddress() {
		return nil, errs.NewObjectNotFoundError("locationAddress", locationID)
	}

	return loc, nil
}
