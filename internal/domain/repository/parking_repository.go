package repository

import (
	"context"
	"time"

	"github.com/truckershub-backend/internal/domain"
)

// ParkingSpotRepository - storage of parking spots
type ParkingSpotRepository interface {
	// GetByID returns nil, nil when the spot does not exist
	GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error)

	// ListInBounds returns the spots inside the box, unordered
	ListInBounds(ctx context.Context, box domain.BoundingBox) ([]*domain.ParkingSpot, error)

	// ListAll returns the whole collection
	ListAll(ctx context.Context) ([]*domain.ParkingSpot, error)

	// Create registers a spot and assigns its id
	Create(ctx context.Context, spot *domain.ParkingSpot) error

	// UpdateOccupancy overwrites the current status unconditionally
	UpdateOccupancy(ctx context.Context, spotID string, status domain.OccupancyStatus, at time.Time) error

	// UpdateRatings replaces the aggregate ratings block
	UpdateRatings(ctx context.Context, spotID string, ratings domain.ParkingRatings) error

	// ExpireOccupancy resets to UNKNOWN every spot whose last update is older
	// than olderThan and returns the ids it touched
	ExpireOccupancy(ctx context.Context, olderThan time.Time) ([]string, error)
}

// ReviewRepository - append-only review storage
type ReviewRepository interface {
	// Create stores the review under a fresh id
	Create(ctx context.Context, review *domain.Review) error

	// ListBySpot returns every review of a spot, newest first
	ListBySpot(ctx context.Context, spotID string) ([]*domain.Review, error)
}

// OccupancyReportRepository - history of occupancy reports
type OccupancyReportRepository interface {
	Create(ctx context.Context, report *domain.OccupancyReport) error

	// ListActiveBySpot returns the reports not yet expired at now, newest first
	ListActiveBySpot(ctx context.Context, spotID string, now time.Time) ([]*domain.OccupancyReport, error)
}
