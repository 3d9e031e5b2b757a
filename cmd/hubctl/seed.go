package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/reference"
	"github.com/truckershub-backend/internal/repository/cache"
	"github.com/truckershub-backend/internal/repository/postgres"
)

var seedCountriesFile string

var seedCountriesCmd = &cobra.Command{
	Use:   "seed-countries",
	Short: "Upsert country driving rules",
	Long:  "Upserts the built-in country rules, or those of --file, and drops cached copies.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		countries, err := loadCountries(seedCountriesFile)
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := seedCountries(ctx, postgres.NewCountryRepository(db), countries)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d countries\n", n)

		redisClient, err := openRedis()
		if err != nil {
			log.Warn("Country cache not purged", zap.Error(err))
			return nil
		}
		defer redisClient.Close()

		if _, err := cache.NewCacheRepository(redisClient).DeleteByPattern(ctx, "cache:country:*"); err != nil {
			log.Warn("Country cache not purged", zap.Error(err))
		}
		return nil
	},
}

func loadCountries(path string) ([]*domain.CountryInfo, error) {
	if path == "" {
		return reference.Countries()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return reference.DecodeCountries(f)
}

func seedCountries(ctx context.Context, repo repository.CountryRepository, countries []*domain.CountryInfo) (int, error) {
	for i, c := range countries {
		if err := repo.Upsert(ctx, c); err != nil {
			return i, eris.Wrapf(err, "upsert country %s", c.Code)
		}
	}
	return len(countries), nil
}

func init() {
	seedCountriesCmd.Flags().StringVar(&seedCountriesFile, "file", "", "countries YAML file (default: built-in data)")
	rootCmd.AddCommand(seedCountriesCmd)
}
