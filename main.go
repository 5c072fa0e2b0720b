// File: foodiespot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodiespot/config"
	"foodiespot/cron"
	"foodiespot/database"
	catalogRepo "foodiespot/database/repository/catalog"
	ledgerRepo "foodiespot/database/repository/ledger"
	"foodiespot/database/seed"
	"foodiespot/handlers"
	"foodiespot/middleware"
	"foodiespot/routes"
	"foodiespot/services/booking"
	"foodiespot/services/catalog"
	"foodiespot/services/notification"
	"foodiespot/services/tasks"
	"foodiespot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Engine settings are validated once, here. A broken schedule must fail
	// fast rather than serve wrong availability.
	settings := booking.Settings{
		ReservationDuration: config.AppConfig.ReservationDurationMin,
		SlotGranularity:     config.AppConfig.SlotGranularityMin,
		LockWait:            time.Duration(config.AppConfig.BookingLockWaitMs) * time.Millisecond,
	}
	if err := settings.Validate(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Storage backends: repositories are the injected storage collaborator,
	// the engine itself never knows what sits behind them.
	var (
		catRepo     catalogRepo.Repository
		ledRepo     ledgerRepo.Repository
		mongoClient *mongo.Client
		err         error
	)
	switch config.AppConfig.StorageBackend {
	case "mongo":
		database.InitDB()
		mongoClient = database.MongoClient
		catRepo = catalogRepo.NewMongoCatalogRepo()
		ledRepo = ledgerRepo.NewMongoLedgerRepo()
	default:
		catRepo, err = catalogRepo.NewFileCatalogRepo(config.AppConfig.DataDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open catalog store: %v", err)
		}
		ledRepo, err = ledgerRepo.NewFileLedgerRepo(config.AppConfig.DataDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open ledger store: %v", err)
		}
	}

	ctx := context.Background()
	if config.AppConfig.SeedSampleData {
		seeded, err := seed.EnsureSeeded(ctx, catRepo, 20)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		if seeded {
			logger.Info("main: seeded catalog with sample restaurants")
		}
	}

	restaurants, err := catRepo.GetAll(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load catalog: %v", err)
	}
	if err := catalog.ValidateRestaurants(restaurants); err != nil {
		logger.Sugar().Fatalf("main: catalog validation failed: %v", err)
	}

	utils.InitCache()

	// services.
	catalogService := &catalog.DefaultCatalogService{
		Repo:        catRepo,
		CacheClient: utils.GetCacheClient(),
		CacheTTL:    time.Duration(config.AppConfig.CatalogCacheTTLSec) * time.Second,
		Logger:      logger,
	}

	ledger := &booking.DefaultLedger{
		Repo:     ledRepo,
		Catalog:  catRepo,
		Settings: settings,
	}
	engine := &booking.DefaultAvailabilityEngine{
		Ledger:   ledger,
		Settings: settings,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()
	reminders := &tasks.AsynqReminderScheduler{
		Client: asynqClient,
		Lead:   time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute,
	}

	coordinator := booking.NewCoordinator(catRepo, engine, ledger, reminders, settings, logger)

	notifier := &notification.LogNotifier{Logger: logger}
	cron.InitReminderWorker(ledger, notifier)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, mongoClient)

	// handlers.
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	bookingHandler := handlers.NewBookingHandler(catalogService, engine, ledger, coordinator, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, catalogHandler, bookingHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
