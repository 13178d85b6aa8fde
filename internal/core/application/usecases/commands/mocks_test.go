package commands_test

import (
	"context"
	"testing"
	"time"

	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/location"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/core/domain/model/proposal"
	"datadelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.DataDelivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, proposalID kernel.UUID) (*delivery.DataDelivery, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.DataDelivery), args.Error(1)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.DataDelivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) AddDeliveryInfo(
	ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo,
) error {
	args := m.Called(ctx, proposalID, info)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateDeliveryInfo(
	ctx context.Context, proposalID kernel.UUID, info *delivery.DeliveryInfo,
) error {
	args := m.Called(ctx, proposalID, info)
	return args.Error(0)
}

func (m *MockDeliveryRepository) UpdateSubDeliveryStatus(
	ctx context.Context,
	proposalID kernel.UUID,
	deliveryInfoID kernel.UUID,
	subDeliveryID kernel.UUID,
	status delivery.SubStatus,
) error {
	args := m.Called(ctx, proposalID, deliveryInfoID, subDeliveryID, status)
	return args.Error(0)
}

func (m *MockDeliveryRepository) FindDeliveryInfosByProposal(
	ctx context.Context, proposalID kernel.UUID,
) ([]*delivery.DeliveryInfo, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.DeliveryInfo), args.Error(1)
}

func (m *MockDeliveryRepository) FindProposalsWithInfoStatus(
	ctx context.Context, status delivery.Status,
) ([]ports.ProposalDeliveries, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ProposalDeliveries), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, event *notification.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchUndispatched(ctx context.Context, limit int) ([]*notification.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Event), args.Error(1)
}

func (m *MockOutboxRepository) MarkDispatched(ctx context.Context, eventID kernel.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockSynchronizer struct{ mock.Mock }

func (m *MockSynchronizer) SyncSubDeliveryStatuses(ctx context.Context, info *delivery.DeliveryInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

func (m *MockSynchronizer) SyncDeliveryInfoResult(ctx context.Context, info *delivery.DeliveryInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

type MockLockService struct{ mock.Mock }

func (m *MockLockService) AcquireLock(ctx context.Context, name string, lease time.Duration) (bool, error) {
	args := m.Called(ctx, name, lease)
	return args.Bool(0), args.Error(1)
}

func (m *MockLockService) ReleaseLock(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type MockCoordinationClient struct{ mock.Mock }

func (m *MockCoordinationClient) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (ports.TaskRef, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.TaskRef), args.Error(1)
}

func (m *MockCoordinationClient) FetchReceivedDatasets(
	ctx context.Context, businessKey string, since time.Time,
) ([]string, error) {
	args := m.Called(ctx, businessKey, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCoordinationClient) FetchResultURL(ctx context.Context, taskID string) (string, error) {
	args := m.Called(ctx, taskID)
	return args.String(0), args.Error(1)
}

func (m *MockCoordinationClient) ReleaseDataSet(ctx context.Context, businessKey string) error {
	args := m.Called(ctx, businessKey)
	return args.Error(0)
}

func (m *MockCoordinationClient) ExtendReleaseWindow(
	ctx context.Context, businessKey string, newDate time.Time,
) error {
	args := m.Called(ctx, businessKey, newDate)
	return args.Error(0)
}

type MockLocationDirectory struct{ mock.Mock }

func (m *MockLocationDirectory) ResolveLocation(ctx context.Context, locationID string) (*location.Location, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(ctx context.Context, event *notification.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockProposalStore struct{ mock.Mock }

func (m *MockProposalStore) GetProposal(ctx context.Context, proposalID kernel.UUID) (*proposal.Proposal, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Proposal), args.Error(1)
}

func newMockedUoW(t *testing.T) (*MockUoWFactory, *MockUoW, *MockDeliveryRepository, *MockOutboxRepository) {
	t.Helper()

	deliveryRepo := new(MockDeliveryRepository)
	outboxRepo := new(MockOutboxRepository)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	uow.On("DeliveryRepository").Return(deliveryRepo).Maybe()
	uow.On("OutboxRepository").Return(outboxRepo).Maybe()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Maybe()

	return factory, uow, deliveryRepo, outboxRepo
}

func restoreInfo(
	t *testing.T,
	status delivery.Status,
	manualEntry bool,
	taskID, businessKey string,
	subs []*delivery.SubDelivery,
) *delivery.DeliveryInfo {
	t.Helper()

	info, err := delivery.RestoreDeliveryInfo(
		kernel.NewUUID(),
		"delivery for project alpha",
		time.Now().AddDate(0, 1, 0),
		status,
		"DMS-01",
		manualEntry,
		"",
		nil,
		nil,
		subs,
		nil,
		taskID,
		businessKey,
		time.Now().AddDate(0, 0, -3),
		time.Now(),
	)
	require.NoError(t, err)
	return info
}

func restoreDelivery(t *testing.T, proposalID kernel.UUID, infos ...*delivery.DeliveryInfo) *delivery.DataDelivery {
	t.Helper()

	dd, err := delivery.RestoreDataDelivery(
		proposalID,
		"DMS-01",
		delivery.AcceptancePending,
		infos,
		time.Now().AddDate(0, 0, -3),
		time.Now(),
	)
	require.NoError(t, err)
	return dd
}

func newSub(t *testing.T, locationID string) *delivery.SubDelivery {
	t.Helper()

	sub, err := delivery.NewSubDelivery(kernel.NewUUID(), locationID)
	require.NoError(t, err)
	return sub
}
