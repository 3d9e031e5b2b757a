package main

// @title TruckersHub API
// @version 1.0.0
// @description Backend for truck drivers: parking spots with a live occupancy "Ampel",
// @description driver reviews, truck-aware routing with saved routes, country driving
// @description rules and the departure walk-around checklist.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/truckershub-backend/docs"
	"github.com/truckershub-backend/internal/config"
	httpDelivery "github.com/truckershub-backend/internal/delivery/http"
	"github.com/truckershub-backend/internal/delivery/http/handler"
	"github.com/truckershub-backend/internal/infrastructure/routing"
	"github.com/truckershub-backend/internal/pkg/auth"
	"github.com/truckershub-backend/internal/pkg/logger"
	"github.com/truckershub-backend/internal/repository/cache"
	"github.com/truckershub-backend/internal/repository/mongo"
	"github.com/truckershub-backend/internal/repository/postgres"
	redisRepo "github.com/truckershub-backend/internal/repository/redis"
	"github.com/truckershub-backend/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting TruckersHub API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("routing_provider", cfg.Routing.Provider),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Connect to MongoDB
	mongoClient, err := mongo.New(&cfg.Mongo, log)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to ensure MongoDB indexes", zap.Error(err))
	}
	cancel()

	log.Info("All connections healthy")

	// 6. Initialize repositories
	spotRepo := postgres.NewParkingSpotRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	reportRepo := postgres.NewOccupancyReportRepository(db)
	countryRepo := postgres.NewCountryRepository(db)
	routeRepo := mongo.NewRouteRepository(mongoClient)
	checkRepo := mongo.NewDepartureCheckRepository(mongoClient)
	locationRepo := mongo.NewLocationRepository(mongoClient)
	statsRepo := mongo.NewUserStatsRepository(mongoClient)
	cacheRepo := cache.NewCacheRepository(redisClient)
	feed := redisRepo.NewChangeFeed(redisClient.Client(), log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)

	provider, err := routing.NewProvider(&cfg.Routing, log)
	if err != nil {
		log.Fatal("Failed to initialize routing provider", zap.Error(err))
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	parkingUC := usecase.NewParkingUseCase(spotRepo, reviewRepo, reportRepo, statsRepo, feed, streamRepo, cfg.Occupancy.ReportTTL, log)
	routeUC := usecase.NewRouteUseCase(provider, routeRepo, cacheRepo, feed, cfg.Fuel, cfg.Cache.RouteCacheTTL, log)
	countryUC := usecase.NewCountryUseCase(countryRepo, cacheRepo, cfg.Cache.CountryCacheTTL, log)
	checklistUC := usecase.NewChecklistUseCase(checkRepo, log)
	locationUC := usecase.NewLocationUseCase(locationRepo, feed, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	handlers := httpDelivery.Handlers{
		Parking:   handler.NewParkingHandler(parkingUC, log),
		Routes:    handler.NewRouteHandler(routeUC, log),
		Locations: handler.NewLocationHandler(locationUC, log),
		Countries: handler.NewCountryHandler(countryUC, log),
		Checklist: handler.NewChecklistHandler(checklistUC, log),
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
			"mongo":    mongoClient,
		}, log),
	}

	tokens, err := auth.NewService(&cfg.Auth)
	if err != nil {
		log.Fatal("Failed to initialize auth", zap.Error(err))
	}

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, handlers, tokens)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := mongoClient.Close(); err != nil {
		log.Error("Failed to close MongoDB", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
