package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

const resolutionSchema = `
	CREATE TABLE IF NOT EXISTS resolutions (
		key TEXT PRIMARY KEY,
		locator TEXT NOT NULL,
		hits INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// ResolutionRepository persists search resolutions in sqlite.
//
// Implements tasks.ResolutionCache. Entries are upserted, so a re-search for
// the same track replaces the stored locator instead of erroring.
type ResolutionRepository struct {
	db *sql.DB
}

// NewResolutionRepository creates a repository and ensures its schema exists.
func NewResolutionRepository(db *sql.DB) (*ResolutionRepository, error) {
	if _, err := db.Exec(resolutionSchema); err != nil {
		return nil, fmt.Errorf("failed to create resolutions table: %w", err)
	}

	return &ResolutionRepository{db: db}, nil
}

// Lookup returns the cached locator for a dedup key. The second return is
// false on a miss; hit counting is best-effort and never fails the lookup.
func (r *ResolutionRepository) Lookup(key string) (string, bool, error) {
	var locator string

	err := r.db.QueryRow("SELECT locator FROM resolutions WHERE key = ?", key).Scan(&locator)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query resolution: %w", err)
	}

	_, _ = r.db.Exec("UPDATE resolutions SET hits = hits + 1 WHERE key = ?", key)

	return locator, true, nil
}

// Store upserts the locator for a dedup key.
func (r *ResolutionRepository) Store(key, locator string) error {
	now := time.Now()

	query := `
		INSERT INTO resolutions (key, locator, hits, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT(key) DO UPDATE SET locator = excluded.locator, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, locator, now, now); err != nil {
		return fmt.Errorf("failed to store resolution: %w", err)
	}

	return nil
}

// Count returns the number of cached resolutions.
func (r *ResolutionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM resolutions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count resolutions: %w", err)
	}
	return count, nil
}

// Clear deletes every cached resolution and returns how many were removed.
func (r *ResolutionRepository) Clear() (int, error) {
	result, err := r.db.Exec("DELETE FROM resolutions")
	if err != nil {
		return 0, fmt.Errorf("failed to clear resolutions: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared resolutions: %w", err)
	}

	return int(removed), nil
}
