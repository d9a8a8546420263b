package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Cache is the storage surface the downloader consults before the
// network. Keys are manifest file names, e.g.
// "2024-01-02/channel-rust-nightly.toml" flattened by the backend.
type Cache interface {
	// Get returns the cached document for key, if present.
	Get(key string) ([]byte, bool)

	// Put stores the document under key. Storage errors are returned so
	// the caller can decide whether a broken cache should stop the run.
	Put(key string, data []byte) error

	// Close releases backend resources.
	Close() error
}

// Noop is a Cache that stores nothing. Used when caching is disabled.
type Noop struct{}

// Get always misses.
func (Noop) Get(string) ([]byte, bool) { return nil, false }

// Put discards the document.
func (Noop) Put(string, []byte) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

// Fs is a file-per-manifest Cache rooted at a directory.
type Fs struct {
	dir string
}

// NewFs creates the cache directory if needed and returns an Fs cache.
func NewFs(dir string) (*Fs, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &Fs{dir: dir}, nil
}

// Get reads the cached file for key. Any read failure is treated as a
// miss; the downloader will refetch.
func (c *Fs) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key)) //nolint:gosec // Path is derived from our own key scheme
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes the document atomically enough for our purposes: a partial
// write from a killed run is refetched next time because TOML parsing
// of the truncated file fails and the entry is overwritten.
func (c *Fs) Put(key string, data []byte) error {
	path := c.path(key)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for the filesystem backend.
func (c *Fs) Close() error { return nil }

// path flattens the key into a single file name inside the cache dir.
func (c *Fs) path(key string) string {
	return filepath.Join(c.dir, flatten(key))
}

func flatten(key string) string {
	out := make([]byte, len(key))
	for i := 0; i < len(key); i++ {
		b := key[i]
		if b == '/' || b == '\\' {
			b = '_'
		}
		out[i] = b
	}
	return string(out)
}
