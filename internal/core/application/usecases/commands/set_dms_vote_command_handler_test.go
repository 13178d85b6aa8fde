package commands_test

import (
	"testing"

	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/domain/model/actor"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVoter(t *testing.T, locationID string) actor.Actor {
	t.Helper()

	voter, err := actor.NewActor("user-1", actor.RoleStaff, locationID)
	require.NoError(t, err)
	return voter
}

func TestSetDmsVoteCommandHandler_Handle_RecordsVote(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	dataDelivery := restoreDelivery(t, proposalID)

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()
	deliveryRepo.On("Update", mock.Anything, dataDelivery).Return(nil).Once()

	cmd, err := commands.NewSetDmsVoteCommand(proposalID, delivery.AcceptanceAccepted, newVoter(t, "DMS-01"))
	require.NoError(t, err)

	h := commands.NewSetDmsVoteCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, delivery.AcceptanceAccepted, dataDelivery.Acceptance())
	deliveryRepo.AssertExpectations(t)
}

func TestSetDmsVoteCommandHandler_Handle_RejectsForeignActor(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	dataDelivery := restoreDelivery(t, proposalID)

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()

	cmd, err := commands.NewSetDmsVoteCommand(proposalID, delivery.AcceptanceDenied, newVoter(t, "DMS-99"))
	require.NoError(t, err)

	h := commands.NewSetDmsVoteCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessForbidden)
	assert.Equal(t, delivery.AcceptancePending, dataDelivery.Acceptance())
	deliveryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewSetDmsVoteCommand_RejectsPendingVote(t *testing.T) {
	_, err := commands.NewSetDmsVoteCommand(kernel.NewUUID(), delivery.AcceptancePending, newVoter(t, "DMS-01"))

	require.Error(t, err)
}
