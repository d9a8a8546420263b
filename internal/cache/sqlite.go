package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite is a single-file Cache backed by a SQLite database.
//
// Design decision: the filesystem backend leaves one file per manifest
// behind, which gets unwieldy for long histories. The SQLite backend
// keeps the whole history in one file and lets other tooling query it
// with ordinary SQL.
type SQLite struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens or creates the cache database at dir/manifests.db.
func OpenSQLite(dir string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	dbPath := filepath.Join(dir, "manifests.db")

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", dbPath, err)
	}

	// SQLite only supports one writer; keep the pool at a single
	// connection like the rest of our SQLite usage.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &SQLite{db: db, dbPath: dbPath}
	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return c, nil
}

func (c *SQLite) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS manifests (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Get returns the cached document for key. Query errors are treated as
// misses.
func (c *SQLite) Get(key string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRow("SELECT body FROM manifests WHERE key = ?", key).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put stores the document under key, replacing any previous entry.
func (c *SQLite) Put(key string, data []byte) error {
	_, err := c.db.Exec(
		"INSERT INTO manifests (key, body) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET body = excluded.body",
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry %s in %s: %w", key, c.dbPath, err)
	}
	return nil
}

// Close closes the underlying database.
func (c *SQLite) Close() error {
	return c.db.Close()
}
