package commands_test

import (
	"testing"

	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncDeliveryCommandHandler_Handle_PendingRunsSubDeliverySync(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	info := restoreInfo(t, delivery.StatusPending, false, "task-1", "bk-1",
		[]*delivery.SubDelivery{newSub(t, "DIC-01")})
	dataDelivery := restoreDelivery(t, proposalID, info)

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()
	deliveryRepo.On("UpdateDeliveryInfo", mock.Anything, proposalID, info).Return(nil).Once()

	synchronizer := new(MockSynchronizer)
	synchronizer.On("SyncSubDeliveryStatuses", mock.Anything, info).Return(nil).Once()

	cmd, err := commands.NewSyncDeliveryCommand(proposalID, info.ID())
	require.NoError(t, err)

	h := commands.NewSyncDeliveryCommandHandler(factory, synchronizer)
	require.NoError(t, h.Handle(ctx, cmd))

	synchronizer.AssertExpectations(t)
	synchronizer.AssertNotCalled(t, "SyncDeliveryInfoResult", mock.Anything, mock.Anything)
	deliveryRepo.AssertExpectations(t)
}

func TestSyncDeliveryCommandHandler_Handle_WaitingRunsResultSync(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	info := restoreInfo(t, delivery.StatusWaitingForDataSet, false, "task-1", "bk-1",
		[]*delivery.SubDelivery{newSub(t, "DIC-01")})
	dataDelivery := restoreDelivery(t, proposalID, info)

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()
	deliveryRepo.On("UpdateDeliveryInfo", mock.Anything, proposalID, info).Return(nil).Once()

	synchronizer := new(MockSynchronizer)
	synchronizer.On("SyncDeliveryInfoResult", mock.Anything, info).Return(nil).Once()

	cmd, err := commands.NewSyncDeliveryCommand(proposalID, info.ID())
	require.NoError(t, err)

	h := commands.NewSyncDeliveryCommandHandler(factory, synchronizer)
	require.NoError(t, h.Handle(ctx, cmd))

	synchronizer.AssertExpectations(t)
	synchronizer.AssertNotCalled(t, "SyncSubDeliveryStatuses", mock.Anything, mock.Anything)
}

func TestSyncDeliveryCommandHandler_Handle_RejectsOtherStatuses(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	info := restoreInfo(t, delivery.StatusFinished, false, "task-1", "bk-1",
		[]*delivery.SubDelivery{newSub(t, "DIC-01")})
	dataDelivery := restoreDelivery(t, proposalID, info)

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()

	synchronizer := new(MockSynchronizer)

	cmd, err := commands.NewSyncDeliveryCommand(proposalID, info.ID())
	require.NoError(t, err)

	h := commands.NewSyncDeliveryCommandHandler(factory, synchronizer)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessForbidden)
	synchronizer.AssertNotCalled(t, "SyncSubDeliveryStatuses", mock.Anything, mock.Anything)
	synchronizer.AssertNotCalled(t, "SyncDeliveryInfoResult", mock.Anything, mock.Anything)
	deliveryRepo.AssertNotCalled(t, "UpdateDeliveryInfo", mock.Anything, mock.Anything, mock.Anything)
}
