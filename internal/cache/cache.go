// Package cache tracks the content hash of every IR unit a run compiled,
// so later runs skip units whose input did not change. The cache lives in
// the project build directory as a small sqlite database; losing it is
// harmless and only costs one full rebuild.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS units (
	path       TEXT PRIMARY KEY,
	hash       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Cache is a handle to the unit cache database.
type Cache struct {
	db *sql.DB
}

// Open opens the cache at path, creating the database and schema when
// missing.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Hash returns the recorded content hash for a unit path, or "" when the
// unit was never cached.
func (c *Cache) Hash(path string) (string, error) {
	var hash string
	err := c.db.QueryRow(`SELECT hash FROM units WHERE path = ?`, path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading cache entry %s: %w", path, err)
	}
	return hash, nil
}

// Changed reports whether hash differs from the recorded one for path. An
// uncached path counts as changed.
func (c *Cache) Changed(path, hash string) (bool, error) {
	cached, err := c.Hash(path)
	if err != nil {
		return true, err
	}
	return cached != hash || cached == "", nil
}

// Store records the content hash for a unit path, replacing any previous
// entry.
func (c *Cache) Store(path, hash string) error {
	_, err := c.db.Exec(`INSERT INTO units (path, hash, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, updated_at = excluded.updated_at`,
		path, hash, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("storing cache entry %s: %w", path, err)
	}
	return nil
}

// Reset drops every entry, forcing the next run to recompile all units.
func (c *Cache) Reset() error {
	if _, err := c.db.Exec(`DELETE FROM units`); err != nil {
		return fmt.Errorf("resetting cache: %w", err)
	}
	return nil
}
