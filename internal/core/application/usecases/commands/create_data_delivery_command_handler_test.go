package commands_test

import (
	"testing"

	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDataDeliveryCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateDataDeliveryCommand(kernel.UUID{}, "DMS-01")
	assert.Error(t, err, "empty proposal id must be rejected")

	_, err = commands.NewCreateDataDeliveryCommand(kernel.NewUUID(), "")
	assert.ErrorIs(t, err, commands.ErrManagementSiteIDIsRequired)
}

func TestCreateDataDeliveryCommandHandler_Handle_PersistsNewAggregate(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.DataDelivery")).Return(nil).Once()

	cmd, err := commands.NewCreateDataDeliveryCommand(proposalID, "DMS-01")
	require.NoError(t, err)

	h := commands.NewCreateDataDeliveryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	deliveryRepo.AssertExpectations(t)
}

func TestCreateDataDeliveryCommandHandler_Handle_RejectsUnconstructedCommand(t *testing.T) {
	ctx := t.Context()
	factory, _, deliveryRepo, _ := newMockedUoW(t)

	h := commands.NewCreateDataDeliveryCommandHandler(factory)
	err := h.Handle(ctx, commands.CreateDataDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrCreateDataDeliveryCommandIsNotConstructed)
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
