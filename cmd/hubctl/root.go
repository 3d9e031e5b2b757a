package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/config"
	"github.com/truckershub-backend/internal/pkg/logger"
	"github.com/truckershub-backend/internal/repository/cache"
	"github.com/truckershub-backend/internal/repository/postgres"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "hubctl",
	Short:        "TruckersHub administration",
	Long:         "Applies migrations, loads reference data and parking spots, inspects polylines and issues tokens for the TruckersHub backend.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		l, err := logger.New(cfg.Log.Level, "hubctl")
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		log = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func openDB() (*postgres.DB, error) {
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return nil, eris.Wrap(err, "connect postgres")
	}
	return db, nil
}

func openRedis() (*cache.Redis, error) {
	r, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		return nil, eris.Wrap(err, "connect redis")
	}
	return r, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
