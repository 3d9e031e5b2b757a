package testhelpers

import (
	"context"
	"fmt"

	"github.com/truckershub-backend/migrations"
)

// ApplyMigrations brings the test database to the embedded schema.
// Files already recorded in schema_migrations are skipped, so every suite may call it.
func ApplyMigrations(tdb *TestDB) error {
	applied, err := NewDBForTest(tdb.DB, tdb.Logger).Migrate(context.Background(), migrations.FS)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, file := range applied {
		tdb.Logger.Sugar().Debugf("Applied migration: %s", file)
	}
	return nil
}
