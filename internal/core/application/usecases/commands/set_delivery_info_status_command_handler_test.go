package commands_test

import (
	"testing"

	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetDeliveryInfoStatusCommandHandler_Handle_ForwardsDelivery(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()

	accepted := newSub(t, "DIC-01")
	accepted.Accept()
	pending := newSub(t, "DIC-02")

	info := restoreInfo(t, delivery.StatusPending, false, "task-1", "bk-1",
		[]*delivery.SubDelivery{accepted, pending})
	dataDelivery := restoreDelivery(t, proposalID, info)

	factory, _, deliveryRepo, outboxRepo := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()
	deliveryRepo.On("UpdateDeliveryInfo", mock.Anything, proposalID, info).Return(nil).Once()

	coordination := new(MockCoordinationClient)
	coordination.On("ReleaseDataSet", mock.Anything, "bk-1").Return(nil).Once()

	synchronizer := new(MockSynchronizer)
	synchronizer.On("SyncSubDeliveryStatuses", mock.Anything, info).Return(nil).Once()

	var event *notification.Event
	outboxRepo.On("Append", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			event = args.Get(1).(*notification.Event)
		}).
		Return(nil).Once()

	cmd, err := commands.NewSetDeliveryInfoStatusCommand(proposalID, info.ID(), delivery.StatusWaitingForDataSet)
	require.NoError(t, err)

	h := commands.NewSetDeliveryInfoStatusCommandHandler(factory, coordination, synchronizer)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, delivery.StatusWaitingForDataSet, info.Status())
	assert.NotNil(t, info.ForwardedAt())
	assert.Equal(t, delivery.SubStatusAccepted, accepted.Status())
	assert.Equal(t, delivery.SubStatusCanceled, pending.Status())

	require.NotNil(t, event)
	assert.Equal(t, notification.KindDataReady, event.Kind())
	coordination.AssertExpectations(t)
	synchronizer.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestSetDeliveryInfoStatusCommandHandler_Handle_CancelsDelivery(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	info := restoreInfo(t, delivery.StatusPending, false, "task-1", "bk-1",
		[]*delivery.SubDelivery{newSub(t, "DIC-01")})
	dataDelivery := restoreDelivery(t, proposalID, info)

	factory, _, deliveryRepo, outboxRepo := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()
	deliveryRepo.On("UpdateDeliveryInfo", mock.Anything, proposalID, info).Return(nil).Once()

	cmd, err := commands.NewSetDeliveryInfoStatusCommand(proposalID, info.ID(), delivery.StatusCanceled)
	require.NoError(t, err)

	h := commands.NewSetDeliveryInfoStatusCommandHandler(factory, new(MockCoordinationClient), new(MockSynchronizer))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, delivery.StatusCanceled, info.Status())
	outboxRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSetDeliveryInfoStatusCommandHandler_Handle_RejectsOtherStatuses(t *testing.T) {
	ctx := t.Context()
	proposalID := kernel.NewUUID()
	info := restoreInfo(t, delivery.StatusPending, false, "task-1", "bk-1",
		[]*delivery.SubDelivery{newSub(t, "DIC-01")})
	dataDelivery := restoreDelivery(t, proposalID, info)

	factory, _, deliveryRepo, _ := newMockedUoW(t)
	deliveryRepo.On("Get", mock.Anything, proposalID).Return(dataDelivery, nil).Once()

	cmd, err := commands.NewSetDeliveryInfoStatusCommand(proposalID, info.ID(), delivery.StatusResultsAvailable)
	require.NoError(t, err)

	h := commands.NewSetDeliveryInfoStatusCommandHandler(factory, new(MockCoordinationClient), new(MockSynchronizer))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessForbidden)
	assert.Equal(t, delivery.StatusPending, info.Status())
	deliveryRepo.AssertNotCalled(t, "UpdateDeliveryInfo", mock.Anything, mock.Anything, mock.Anything)
}
