package testhelpers

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/truckershub-backend/internal/config"
)

// TestDB is a connection to the integration database
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// tables in truncation order
var tables = []string{
	"occupancy_reports",
	"reviews",
	"parking_spots",
	"countries",
}

// testConfig reads TEST_DB_* overrides; the defaults target a local postgres container on 5433
func testConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5433),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "truckershub_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
}

// SetupTestDB connects to the integration database, retrying with backoff while
// the container starts. The test is skipped when it never comes up.
func SetupTestDB(t *testing.T) *TestDB {
	cfg := testConfig()

	var (
		db  *sqlx.DB
		err error
	)
	attempts := getEnvInt("TEST_DB_RETRIES", 3)
	delay := 250 * time.Millisecond

	for i := 1; i <= attempts; i++ {
		if db, err = sqlx.Connect("postgres", cfg.DSN()); err == nil {
			break
		}
		if i < attempts {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i, attempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	if err != nil {
		t.Skipf("Test database %s:%d/%s not available: %v", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	return &TestDB{DB: db, Logger: zap.NewNop()}
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup truncates every table; tables not yet migrated are skipped
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range tables {
		_, _ = tdb.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
