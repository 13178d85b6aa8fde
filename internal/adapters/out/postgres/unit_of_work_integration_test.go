package postgres_test

import (
	"context"
	"testing"
	"time"

	"datadelivery/internal/adapters/out/postgres"
	"datadelivery/internal/adapters/out/postgres/deliveryrepo"
	"datadelivery/internal/adapters/out/postgres/outboxrepo"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/notification"
	"datadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that delivery state and outbox
// events commit and roll back as one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgrescontainer.Run(ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&deliveryrepo.DataDeliveryDTO{},
		&deliveryrepo.DeliveryInfoDTO{},
		&deliveryrepo.SubDeliveryDTO{},
		&outboxrepo.EventDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE data_deliveries, delivery_infos, sub_deliveries, notification_outbox",
	).Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsDeliveryAndEventTogether() {
	ctx := context.Background()

	dd, err := delivery.NewDataDelivery(kernel.NewUUID(), "DMS-01")
	suite.Require().NoError(err)
	event, err := notification.NewDeliveryInitiatedEvent(dd.ProposalID(), []string{"Campus Nord 12"})
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, dd))
	suite.Require().NoError(uow.OutboxRepository().Append(ctx, event))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().DeliveryRepository().Get(ctx, dd.ProposalID())
	suite.Require().NoError(err)
	suite.Assert().True(loaded.ProposalID().IsEqual(dd.ProposalID()))

	events, err := suite.factory.Create().OutboxRepository().FetchUndispatched(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Assert().Equal(notification.KindDeliveryInitiated, events[0].Kind())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsDeliveryAndEventTogether() {
	ctx := context.Background()

	dd, err := delivery.NewDataDelivery(kernel.NewUUID(), "DMS-01")
	suite.Require().NoError(err)
	event, err := notification.NewDataReturnEvent(dd.ProposalID(), "https://results.example.org/alpha")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, dd))
	suite.Require().NoError(uow.OutboxRepository().Append(ctx, event))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().DeliveryRepository().Get(ctx, dd.ProposalID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	events, err := suite.factory.Create().OutboxRepository().FetchUndispatched(ctx, 10)
	suite.Require().NoError(err)
	suite.Assert().Empty(events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
