package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// SetSpotAmpelUpdate backdates the last occupancy update of a fixture spot
func SetSpotAmpelUpdate(db *sql.DB, spotID, status string, at time.Time) error {
	_, err := db.ExecContext(context.Background(),
		"UPDATE parking_spots SET current_ampel = $2, last_ampel_update = $3 WHERE id = $1",
		spotID, status, at)
	if err != nil {
		return fmt.Errorf("set ampel of spot %s: %w", spotID, err)
	}
	return nil
}
