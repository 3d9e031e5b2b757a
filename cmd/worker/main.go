package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/config"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/infrastructure/mqtt"
	"github.com/truckershub-backend/internal/pkg/logger"
	"github.com/truckershub-backend/internal/repository/cache"
	"github.com/truckershub-backend/internal/repository/postgres"
	redisRepo "github.com/truckershub-backend/internal/repository/redis"
	"github.com/truckershub-backend/internal/usecase"
	"github.com/truckershub-backend/internal/worker"
	"github.com/truckershub-backend/internal/worker/occupancy"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting TruckersHub worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Bool("expiry", cfg.Worker.ExpiryEnabled),
		zap.Bool("broadcast", cfg.Worker.BroadcastEnabled),
		zap.Duration("report_ttl", cfg.Occupancy.ReportTTL))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	feed := redisRepo.NewChangeFeed(redisClient.Client(), log)

	parkingUC := usecase.NewParkingUseCase(
		postgres.NewParkingSpotRepository(db),
		postgres.NewReviewRepository(db),
		postgres.NewOccupancyReportRepository(db),
		nil, // contribution stats are only written by the API
		feed,
		streamRepo,
		cfg.Occupancy.ReportTTL,
		log,
	)

	// 6. Register workers
	workerManager := worker.NewWorkerManager(log)

	if cfg.Worker.ExpiryEnabled {
		workerManager.Register(occupancy.NewExpiryWorker(parkingUC, cfg.Occupancy.ExpiryInterval, log))
	}

	if cfg.Worker.BroadcastEnabled {
		broadcaster := newBroadcaster(cfg, log)
		defer broadcaster.Close()

		workerManager.Register(occupancy.NewBroadcastWorker(
			streamRepo,
			broadcaster,
			cfg.Worker.ConsumerGroup,
			cfg.Worker.MaxRetries,
			log,
		))
	}

	// 7. Start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}

// newBroadcaster falls back to logging when MQTT is disabled or unreachable
func newBroadcaster(cfg *config.Config, log *zap.Logger) repository.OccupancyBroadcaster {
	if !cfg.MQTT.Enabled {
		log.Info("MQTT disabled, occupancy changes are only logged")
		return mqtt.NewLogBroadcaster(log)
	}

	broadcaster, err := mqtt.NewBroadcaster(&cfg.MQTT, log)
	if err != nil {
		log.Error("Failed to connect to MQTT broker, occupancy changes are only logged", zap.Error(err))
		return mqtt.NewLogBroadcaster(log)
	}
	return broadcaster
}
