package postgres

import (
	"context"
	"io/fs"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate applies every *.up.sql file of fsys not yet recorded in
// schema_migrations, in name order, each in its own transaction.
// It returns the names it applied.
func (db *DB) Migrate(ctx context.Context, fsys fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, eris.Wrap(err, "create schema_migrations")
	}

	files, err := UpMigrations(fsys)
	if err != nil {
		return nil, err
	}

	var done []string
	if err := db.SelectContext(ctx, &done, `SELECT name FROM schema_migrations`); err != nil {
		return nil, eris.Wrap(err, "read schema_migrations")
	}
	applied := make(map[string]bool, len(done))
	for _, name := range done {
		applied[name] = true
	}

	var ran []string
	for _, name := range files {
		if applied[name] {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return ran, eris.Wrapf(err, "read migration %s", name)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return ran, eris.Wrap(err, "begin migration")
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return ran, eris.Wrapf(err, "apply migration %s", name)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			_ = tx.Rollback()
			return ran, eris.Wrapf(err, "record migration %s", name)
		}
		if err := tx.Commit(); err != nil {
			return ran, eris.Wrapf(err, "commit migration %s", name)
		}

		db.logger.Info("Applied migration", zap.String("name", name))
		ran = append(ran, name)
	}

	return ran, nil
}

// UpMigrations lists the *.up.sql files at the root of fsys in apply order
func UpMigrations(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, eris.Wrap(err, "read migrations")
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Rollback reverts the last steps applied migrations, newest first, by running
// the matching *.down.sql file and removing the schema_migrations row in one
// transaction. It returns the names it reverted.
func (db *DB) Rollback(ctx context.Context, fsys fs.FS, steps int) ([]string, error) {
	if steps <= 0 {
		return nil, nil
	}
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, eris.Wrap(err, "create schema_migrations")
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied,
		`SELECT name FROM schema_migrations ORDER BY name DESC LIMIT $1`, steps); err != nil {
		return nil, eris.Wrap(err, "read schema_migrations")
	}

	var reverted []string
	for _, name := range applied {
		down := DownMigration(name)
		content, err := fs.ReadFile(fsys, down)
		if err != nil {
			return reverted, eris.Wrapf(err, "read down migration of %s", name)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return reverted, eris.Wrap(err, "begin rollback")
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return reverted, eris.Wrapf(err, "revert migration %s", name)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE name = $1`, name); err != nil {
			_ = tx.Rollback()
			return reverted, eris.Wrapf(err, "unrecord migration %s", name)
		}
		if err := tx.Commit(); err != nil {
			return reverted, eris.Wrapf(err, "commit rollback of %s", name)
		}

		db.logger.Info("Reverted migration", zap.String("name", name))
		reverted = append(reverted, name)
	}

	return reverted, nil
}

// DownMigration names the file that reverts the up migration name
func DownMigration(name string) string {
	return strings.TrimSuffix(name, ".up.sql") + ".down.sql"
}
