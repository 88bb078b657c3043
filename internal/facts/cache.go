package facts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileMode = 0644
	cacheDirMode  = 0755
)

// DateKey formats t's local calendar date as the canonical cache key
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Cache stores one plain-text file per calendar day. Entries carry the raw
// fact text with no framing.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir; the directory is created on demand
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Get returns the cached text for key. An absent or empty entry is a miss.
func (c *Cache) Get(key string) (string, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// Put stores text under key. Callers treat failures as best-effort: a value
// that could not be persisted is still worth publishing.
func (c *Cache) Put(key, text string) error {
	if err := os.MkdirAll(c.dir, cacheDirMode); err != nil {
		return fmt.Errorf("facts: create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(key), []byte(text), cacheFileMode); err != nil {
		return fmt.Errorf("facts: write cache entry: %w", err)
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".txt")
}
