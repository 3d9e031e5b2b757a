package postgres_test

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckershub-backend/internal/repository/postgres"
	"github.com/truckershub-backend/internal/repository/postgres/testhelpers"
	"github.com/truckershub-backend/migrations"
)

func TestUpMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {Data: []byte("SELECT 2")},
		"000001_a.up.sql":   {Data: []byte("SELECT 1")},
		"000001_a.down.sql": {Data: []byte("SELECT 0")},
		"README.md":         {Data: []byte("notes")},
	}

	files, err := postgres.UpMigrations(fsys)

	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, files)
}

func TestUpMigrations_Embedded(t *testing.T) {
	files, err := postgres.UpMigrations(migrations.FS)

	require.NoError(t, err)
	assert.Equal(t, []string{"000001_parking.up.sql", "000002_countries.up.sql"}, files)
}

func TestDownMigration(t *testing.T) {
	assert.Equal(t, "000001_a.down.sql", postgres.DownMigration("000001_a.up.sql"))
}

func TestEmbeddedMigrations_Reversible(t *testing.T) {
	files, err := postgres.UpMigrations(migrations.FS)
	require.NoError(t, err)

	for _, up := range files {
		_, err := fs.Stat(migrations.FS, postgres.DownMigration(up))
		assert.NoError(t, err, "%s has no down migration", up)
	}
}

func TestRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()
	require.NoError(t, testhelpers.ApplyMigrations(tdb))

	db := testhelpers.NewDBForTest(tdb.DB, tdb.Logger)
	ctx := context.Background()

	reverted, err := db.Rollback(ctx, migrations.FS, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_countries.up.sql"}, reverted)

	var table *string
	require.NoError(t, tdb.DB.GetContext(ctx, &table, `SELECT to_regclass('countries')::text`))
	assert.Nil(t, table)

	applied, err := db.Migrate(ctx, migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, []string{"000002_countries.up.sql"}, applied)

	none, err := db.Rollback(ctx, migrations.FS, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
