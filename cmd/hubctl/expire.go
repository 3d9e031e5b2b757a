package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/truckershub-backend/internal/repository/postgres"
	redisRepo "github.com/truckershub-backend/internal/repository/redis"
	"github.com/truckershub-backend/internal/usecase"
)

var expireOccupancyCmd = &cobra.Command{
	Use:   "expire-occupancy",
	Short: "Reset spots whose last occupancy report has expired",
	Long:  "Runs one expiry sweep, the same the worker runs on its interval.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		redisClient, err := openRedis()
		if err != nil {
			return err
		}
		defer redisClient.Close()

		parkingUC := usecase.NewParkingUseCase(
			postgres.NewParkingSpotRepository(db),
			postgres.NewReviewRepository(db),
			postgres.NewOccupancyReportRepository(db),
			nil,
			redisRepo.NewChangeFeed(redisClient.Client(), log),
			redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log),
			cfg.Occupancy.ReportTTL,
			log,
		)

		ids, err := parkingUC.ExpireStaleOccupancy(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "expired %d spots\n", len(ids))
		return nil
	},
}

func init() { rootCmd.AddCommand(expireOccupancyCmd) }
