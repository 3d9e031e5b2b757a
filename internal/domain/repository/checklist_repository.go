package repository

import (
	"context"

	"github.com/truckershub-backend/internal/domain"
)

type DepartureCheckRepository interface {
	Create(ctx context.Context, check *domain.DepartureCheck) error

	// ListByUser returns the latest checks of a user, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.DepartureCheck, error)
}
