package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"datadelivery/cmd"
	httpserver "datadelivery/internal/adapters/in/http"
	"datadelivery/internal/adapters/out/dsf"
	"datadelivery/internal/adapters/out/locdir"
	"datadelivery/internal/adapters/out/notifier"
	"datadelivery/internal/adapters/out/postgres/deliveryrepo"
	"datadelivery/internal/adapters/out/postgres/outboxrepo"
	"datadelivery/internal/adapters/out/proposalapi"
	"datadelivery/internal/adapters/out/redislock"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	redisClient := mustConnectRedis(configs)

	coordination, err := dsf.NewClient(configs.DsfBaseURL, configs.DsfAPIToken)
	if err != nil {
		log.Fatalf("Failed to create coordination client: %v", err)
	}
	proposals, err := proposalapi.NewClient(configs.ProposalServiceURL)
	if err != nil {
		log.Fatalf("Failed to create proposal client: %v", err)
	}
	locations, err := locdir.NewClient(configs.LocationDirectoryURL)
	if err != nil {
		log.Fatalf("Failed to create location directory client: %v", err)
	}
	dispatcher, err := notifier.NewWebhookDispatcher(configs.NotificationWebhookURL)
	if err != nil {
		log.Fatalf("Failed to create notification dispatcher: %v", err)
	}
	locks, err := redislock.NewRedisLockService(redisClient)
	if err != nil {
		log.Fatalf("Failed to create lock service: %v", err)
	}

	app, err := cmd.NewCompositionRoot(
		configs, gormDB, proposals, locations, coordination, dispatcher, locks, logger,
	)
	if err != nil {
		log.Fatalf("Failed to create composition root: %v", err)
	}

	schedulerLocation, err := time.LoadLocation(configs.SchedulerTimezone)
	if err != nil {
		log.Fatalf("Failed to load scheduler timezone %q: %v", configs.SchedulerTimezone, err)
	}

	jobManager := app.CreateJobManager(schedulerLocation)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		RedisURL:               goDotEnvVariable("REDIS_URL"),
		DsfBaseURL:             goDotEnvVariable("DSF_BASE_URL"),
		DsfAPIToken:            goDotEnvVariable("DSF_API_TOKEN"),
		ProposalServiceURL:     goDotEnvVariable("PROPOSAL_SERVICE_URL"),
		LocationDirectoryURL:   goDotEnvVariable("LOCATION_DIRECTORY_URL"),
		NotificationWebhookURL: goDotEnvVariable("NOTIFICATION_WEBHOOK_URL"),
		SchedulerTimezone:      goDotEnvVariable("SCHEDULER_TIMEZONE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&deliveryrepo.DataDeliveryDTO{},
		&deliveryrepo.DeliveryInfoDTO{},
		&deliveryrepo.SubDeliveryDTO{},
		&outboxrepo.EventDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func mustConnectRedis(configs cmd.Config) *redis.Client {
	opts, err := redis.ParseURL(configs.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse redis url: %v", err)
	}
	return redis.NewClient(opts)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpserver.NewServer(
		app.CreateCreateDataDeliveryCommandHandler(),
		app.CreateSetDmsVoteCommandHandler(),
		app.CreateInitDeliveryInfoCommandHandler(),
		app.CreateSetDeliveryInfoStatusCommandHandler(),
		app.CreateSyncDeliveryCommandHandler(),
		app.CreateExtendDeliveryDateCommandHandler(),
		app.CreateRateSubDeliveryCommandHandler(),
		app.CreateConcludeResearchCommandHandler(),
		app.CreateGetDataDeliveryQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
