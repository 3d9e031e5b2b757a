package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truckershub-backend/internal/domain"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*cacheRepository, *redis.Client) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   14,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return &cacheRepository{client: client, logger: zap.NewNop()}, client
}

func TestCacheRepository_GetSet(t *testing.T) {
	repo, _ := setupTestCache(t)
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		val, err := repo.Get(ctx, "cache:missing")
		assert.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "cache:k", []byte("v"), time.Minute))

		val, err := repo.Get(ctx, "cache:k")
		assert.NoError(t, err)
		assert.Equal(t, []byte("v"), val)

		ok, err := repo.Exists(ctx, "cache:k")
		assert.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, repo.Delete(ctx, "cache:k"))
		ok, err = repo.Exists(ctx, "cache:k")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCacheRepository_Country(t *testing.T) {
	repo, _ := setupTestCache(t)
	ctx := context.Background()

	miss, err := repo.GetCountry(ctx, "de")
	require.NoError(t, err)
	assert.Nil(t, miss)

	de := &domain.CountryInfo{Code: "DE", Name: "Deutschland", TollSystem: domain.TollElectronic}
	require.NoError(t, repo.SetCountry(ctx, de, time.Minute))

	got, err := repo.GetCountry(ctx, "de")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Deutschland", got.Name)
}

func TestCacheRepository_RouteResultCorruptEntryIsMiss(t *testing.T) {
	repo, client := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, routeKeyspace+"abc", "{not json", time.Minute).Err())

	got, err := repo.GetRouteResult(ctx, "abc")
	assert.NoError(t, err)
	assert.Nil(t, got)

	exists, err := client.Exists(ctx, routeKeyspace+"abc").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}

func TestCacheRepository_DeleteByPattern(t *testing.T) {
	repo, client := setupTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"cache:route:1", "cache:route:2", "cache:country:DE"} {
		require.NoError(t, client.Set(ctx, key, "x", time.Minute).Err())
	}

	n, err := repo.DeleteByPattern(ctx, "cache:route:*")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := client.Exists(ctx, "cache:country:DE").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
}
