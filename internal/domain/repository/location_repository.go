package repository

import (
	"context"

	"github.com/truckershub-backend/internal/domain"
)

// LocationRepository - saved places of users
type LocationRepository interface {
	// Save inserts or replaces the location; an empty id gets a fresh one
	Save(ctx context.Context, location *domain.SavedLocation) error

	// GetByID returns nil, nil when the location does not exist
	GetByID(ctx context.Context, id string) (*domain.SavedLocation, error)

	// ListByUser returns the user's locations ordered by name
	ListByUser(ctx context.Context, userID string) ([]*domain.SavedLocation, error)

	// Delete removes a location; unknown ids are an error
	Delete(ctx context.Context, id string) error
}

// UserStatsRepository - contribution counters per user
type UserStatsRepository interface {
	// Increment adds delta to the user's counters, creating them on first use
	Increment(ctx context.Context, userID string, delta domain.StatsDelta) error

	// GetByUserID returns zeroed counters for users without any contribution
	GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error)
}
