package repository

import (
	"context"
	"time"

	"github.com/truckershub-backend/internal/domain"
)

// CacheRepository - key/value cache in front of the stores and the routing API
type CacheRepository interface {
	// Get returns nil, nil on a miss
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// DeleteByPattern removes every key matching a glob and returns how many
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)

	// GetCountry returns nil, nil on a miss
	GetCountry(ctx context.Context, code string) (*domain.CountryInfo, error)

	SetCountry(ctx context.Context, country *domain.CountryInfo, ttl time.Duration) error

	// GetRouteResult returns nil, nil on a miss
	GetRouteResult(ctx context.Context, key string) (*domain.RouteResult, error)

	SetRouteResult(ctx context.Context, key string, result *domain.RouteResult, ttl time.Duration) error
}
