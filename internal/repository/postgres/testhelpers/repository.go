package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

func NewParkingSpotRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ParkingSpotRepository {
	return postgres.NewParkingSpotRepository(NewDBForTest(db, logger))
}

func NewReviewRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ReviewRepository {
	return postgres.NewReviewRepository(NewDBForTest(db, logger))
}

func NewOccupancyReportRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.OccupancyReportRepository {
	return postgres.NewOccupancyReportRepository(NewDBForTest(db, logger))
}

func NewCountryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CountryRepository {
	return postgres.NewCountryRepository(NewDBForTest(db, logger))
}
