package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

type occupancyReportRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOccupancyReportRepository(db *DB) repository.OccupancyReportRepository {
	return &occupancyReportRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *occupancyReportRepository) Create(ctx context.Context, report *domain.OccupancyReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}

	query := `
		INSERT INTO occupancy_reports (
			id, parking_spot_id, user_id, user_name, status, comment, created_at, expires_at
		) VALUES (
			:id, :parking_spot_id, :user_id, :user_name, :status, :comment, :created_at, :expires_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		r.logger.Error("Failed to create occupancy report",
			zap.String("spot_id", report.ParkingSpotID),
			zap.String("status", string(report.Status)),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *occupancyReportRepository) ListActiveBySpot(
	ctx context.Context,
	spotID string,
	now time.Time,
) ([]*domain.OccupancyReport, error) {
	if _, err := uuid.Parse(spotID); err != nil {
		return []*domain.OccupancyReport{}, nil
	}

	query := `
		SELECT id, parking_spot_id, user_id, user_name, status, comment, created_at, expires_at
		FROM occupancy_reports
		WHERE parking_spot_id = $1 AND expires_at > $2
		ORDER BY created_at DESC`

	reports := []*domain.OccupancyReport{}
	if err := r.db.SelectContext(ctx, &reports, query, spotID, now); err != nil {
		r.logger.Error("Failed to list occupancy reports", zap.String("spot_id", spotID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return reports, nil
}
