package repository

import (
	"context"

	"github.com/truckershub-backend/internal/domain"
)

// CountryRepository - read-mostly regulatory reference data
type CountryRepository interface {
	// GetByCode returns nil, nil for unknown codes
	GetByCode(ctx context.Context, code string) (*domain.CountryInfo, error)

	List(ctx context.Context) ([]*domain.CountryInfo, error)

	// Upsert is used by the seed command only
	Upsert(ctx context.Context, country *domain.CountryInfo) error
}
