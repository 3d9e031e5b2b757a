package handler

import (
	"context"
	"time"

	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/usecase"
	"github.com/truckershub-backend/internal/usecase/dto"
)

// ParkingService - the parking operations the handlers need
type ParkingService interface {
	Nearby(ctx context.Context, center domain.Coordinate, radiusKm float64) ([]*domain.ParkingSpot, error)
	ObserveNearby(ctx context.Context, center domain.Coordinate, radiusKm float64) (*usecase.Subscription[[]*domain.ParkingSpot], error)
	GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error)
	GetDetails(ctx context.Context, id string) (*dto.ParkingDetails, error)
	ListReviews(ctx context.Context, spotID string) ([]*domain.Review, error)
	ObserveReviews(ctx context.Context, spotID string) (*usecase.Subscription[[]*domain.Review], error)
	SubmitReview(ctx context.Context, user domain.UserIdentity, review *domain.Review) (*domain.Review, error)
	ReportOccupancy(ctx context.Context, spotID string, user domain.UserIdentity, status domain.OccupancyStatus, comment string) (*domain.OccupancyReport, error)
	Stats(ctx context.Context, user domain.UserIdentity) (*domain.UserStats, error)
}

type RouteService interface {
	Calculate(ctx context.Context, user domain.UserIdentity, req dto.CalculateRouteRequest) (*domain.Route, error)
	Save(ctx context.Context, user domain.UserIdentity, route *domain.Route) (*domain.Route, error)
	GetByID(ctx context.Context, user domain.UserIdentity, id string) (*domain.Route, error)
	ListSaved(ctx context.Context, user domain.UserIdentity) ([]*domain.Route, error)
	ObserveSaved(ctx context.Context, user domain.UserIdentity) (*usecase.Subscription[[]*domain.Route], error)
	Delete(ctx context.Context, user domain.UserIdentity, id string) error
	ExportGeoJSON(ctx context.Context, user domain.UserIdentity, id string) ([]byte, error)
}

type LocationService interface {
	Save(ctx context.Context, user domain.UserIdentity, location *domain.SavedLocation) (*domain.SavedLocation, error)
	List(ctx context.Context, user domain.UserIdentity) ([]*domain.SavedLocation, error)
	Observe(ctx context.Context, user domain.UserIdentity) (*usecase.Subscription[[]*domain.SavedLocation], error)
	Delete(ctx context.Context, user domain.UserIdentity, id string) error
}

type CountryService interface {
	Get(ctx context.Context, code string) (*domain.CountryInfo, error)
	List(ctx context.Context) ([]*domain.CountryInfo, error)
}

type ChecklistService interface {
	Submit(ctx context.Context, user domain.UserIdentity, checks map[string]bool) (*domain.DepartureCheck, error)
	History(ctx context.Context, user domain.UserIdentity) ([]*domain.DepartureCheck, error)
}

// HealthChecker - a backing store that can be pinged
type HealthChecker interface {
	Health(ctx context.Context) error
}

const healthTimeout = 2 * time.Second
