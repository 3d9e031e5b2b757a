package repository

import (
	"context"
	"time"

	"github.com/truckershub-backend/internal/domain"
)

// RouteRepository - saved routes of users
type RouteRepository interface {
	// Save inserts or replaces the route; an empty id gets a fresh one
	Save(ctx context.Context, route *domain.Route) error

	// GetByID returns nil, nil when the route does not exist
	GetByID(ctx context.Context, id string) (*domain.Route, error)

	// ListSaved returns the user's saved routes, newest first
	ListSaved(ctx context.Context, userID string) ([]*domain.Route, error)

	// Delete removes a route; unknown ids are an error
	Delete(ctx context.Context, id string) error

	// TouchLastUsed records that the route was opened
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}

// RouteProvider - remote truck routing API
type RouteProvider interface {
	// CalculateRoute returns the best path. A provider answering with no path
	// yields ErrNoRoute; transport and parse failures yield ErrProviderUnavailable.
	CalculateRoute(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)

	// Name identifies the provider in logs and cache keys
	Name() string
}
