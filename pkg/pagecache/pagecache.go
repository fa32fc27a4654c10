// Package pagecache persists fetched HTML in a SQLite database so repeated
// profiling runs against the same site do not re-fetch every page.
package pagecache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	url        TEXT PRIMARY KEY,
	html       TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);
`

// Cache is a TTL-bounded page store.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens (or creates) the cache database at path. Use ":memory:" for an
// ephemeral cache in tests.
func Open(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize page cache schema: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached HTML for url if present and not expired.
func (c *Cache) Get(url string) (string, bool) {
	var html string
	var fetchedAt int64
	err := c.db.QueryRow("SELECT html, fetched_at FROM pages WHERE url = ?", url).
		Scan(&html, &fetchedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			// Read errors count as misses; the caller re-fetches.
			return "", false
		}
		return "", false
	}
	if c.ttl > 0 && time.Since(time.Unix(0, fetchedAt)) > c.ttl {
		return "", false
	}
	return html, true
}

// Put stores html for url, replacing any previous entry.
func (c *Cache) Put(url, html string) error {
	_, err := c.db.Exec(
		"INSERT INTO pages (url, html, fetched_at) VALUES (?, ?, ?) ON CONFLICT(url) DO UPDATE SET html = excluded.html, fetched_at = excluded.fetched_at",
		url, html, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store page: %w", err)
	}
	return nil
}

// Prune deletes all expired entries and returns how many were removed.
func (c *Cache) Prune() (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-c.ttl).UnixNano()
	res, err := c.db.Exec("DELETE FROM pages WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune page cache: %w", err)
	}
	return res.RowsAffected()
}
