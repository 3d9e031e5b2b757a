package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	keyPrefix       = "cache:"
	countryKeyspace = keyPrefix + "country:"
	routeKeyspace   = keyPrefix + "route:"
	scanBatch       = 200
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// DeleteByPattern walks the keyspace with SCAN so large caches never block the server
func (r *cacheRepository) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			r.logger.Error("Failed to scan cache", zap.String("pattern", pattern), zap.Error(err))
			return deleted, fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				r.logger.Error("Failed to delete scanned keys", zap.String("pattern", pattern), zap.Error(err))
				return deleted, fmt.Errorf("cache delete error: %w", err)
			}
			deleted += n
		}

		if next == 0 {
			break
		}
		cursor = next
	}

	r.logger.Info("Cache purged", zap.String("pattern", pattern), zap.Int64("deleted", deleted))
	return deleted, nil
}

func (r *cacheRepository) GetCountry(ctx context.Context, code string) (*domain.CountryInfo, error) {
	var country domain.CountryInfo
	found, err := r.getJSON(ctx, countryKeyspace+strings.ToUpper(code), &country)
	if err != nil || !found {
		return nil, err
	}
	return &country, nil
}

func (r *cacheRepository) SetCountry(ctx context.Context, country *domain.CountryInfo, ttl time.Duration) error {
	return r.setJSON(ctx, countryKeyspace+strings.ToUpper(country.Code), country, ttl)
}

func (r *cacheRepository) GetRouteResult(ctx context.Context, key string) (*domain.RouteResult, error) {
	var result domain.RouteResult
	found, err := r.getJSON(ctx, routeKeyspace+key, &result)
	if err != nil || !found {
		return nil, err
	}
	return &result, nil
}

func (r *cacheRepository) SetRouteResult(ctx context.Context, key string, result *domain.RouteResult, ttl time.Duration) error {
	return r.setJSON(ctx, routeKeyspace+key, result, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		// a corrupt entry behaves like a miss and is dropped
		r.logger.Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		_ = r.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return r.Set(ctx, key, data, ttl)
}
