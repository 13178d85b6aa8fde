package cmd

import (
	"log/slog"
	"time"

	"datadelivery/internal/adapters/out/postgres"
	"datadelivery/internal/core/application/services/dsfsync"
	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/application/usecases/queries"
	"datadelivery/internal/core/ports"
	"datadelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	proposals    ports.ProposalStore
	locations    ports.LocationDirectory
	coordination ports.CoordinationClient
	dispatcher   ports.NotificationDispatcher
	locks        ports.LockService
	synchronizer *dsfsync.Engine
	logger       *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	proposals ports.ProposalStore,
	locations ports.LocationDirectory,
	coordination ports.CoordinationClient,
	dispatcher ports.NotificationDispatcher,
	locks ports.LockService,
	logger *slog.Logger,
) (CompositionRoot, error) {
	synchronizer, err := dsfsync.NewEngine(coordination, locations, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		proposals:    proposals,
		locations:    locations,
		coordination: coordination,
		dispatcher:   dispatcher,
		locks:        locks,
		synchronizer: synchronizer,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDataDeliveryCommandHandler() commands.CreateDataDeliveryCommandHandler {
	return commands.NewCreateDataDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateSetDmsVoteCommandHandler() commands.SetDmsVoteCommandHandler {
	return commands.NewSetDmsVoteCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateInitDeliveryInfoCommandHandler() commands.InitDeliveryInfoCommandHandler {
	return commands.NewInitDeliveryInfoCommandHandler(c.createUoWFactory(), c.proposals, c.locations, c.coordination)
}

func (c *CompositionRoot) CreateSetDeliveryInfoStatusCommandHandler() commands.SetDeliveryInfoStatusCommandHandler {
	return commands.NewSetDeliveryInfoStatusCommandHandler(c.createUoWFactory(), c.coordination, c.synchronizer)
}

func (c *CompositionRoot) CreateSyncDeliveryCommandHandler() commands.SyncDeliveryCommandHandler {
	return commands.NewSyncDeliveryCommandHandler(c.createUoWFactory(), c.synchronizer)
}

func (c *CompositionRoot) CreateExtendDeliveryDateCommandHandler() commands.ExtendDeliveryDateCommandHandler {
	return commands.NewExtendDeliveryDateCommandHandler(c.createUoWFactory(), c.coordination)
}

func (c *CompositionRoot) CreateRateSubDeliveryCommandHandler() commands.RateSubDeliveryCommandHandler {
	return commands.NewRateSubDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateConcludeResearchCommandHandler() commands.ConcludeResearchCommandHandler {
	return commands.NewConcludeResearchCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateSyncPendingDeliveriesCommandHandler() commands.SyncPendingDeliveriesCommandHandler {
	return commands.NewSyncPendingDeliveriesCommandHandler(c.createUoWFactory(), c.synchronizer, c.locks, c.logger)
}

func (c *CompositionRoot) CreateSyncAwaitedResultsCommandHandler() commands.SyncAwaitedResultsCommandHandler {
	return commands.NewSyncAwaitedResultsCommandHandler(c.createUoWFactory(), c.synchronizer, c.locks, c.logger)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	return commands.NewRelayNotificationsCommandHandler(c.createUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateGetDataDeliveryQueryHandler() queries.GetDataDeliveryQueryHandler {
	return queries.NewGetDataDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(location *time.Location) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSyncPendingDeliveriesCommandHandler(),
		c.CreateSyncAwaitedResultsCommandHandler(),
		c.CreateRelayNotificationsCommandHandler(),
		location,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
