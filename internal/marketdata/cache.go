package marketdata

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileCache stores raw kline payloads on disk, one file per (symbol, day).
// Historical bars never change, so entries have no TTL.
type FileCache struct {
	dir string
	mu  sync.RWMutex
}

// NewFileCache creates a cache rooted at dir.
func NewFileCache(dir string) *FileCache {
	if dir == "" {
		dir = "cache"
	}
	return &FileCache{dir: dir}
}

// Get retrieves the cached payload for a symbol and day.
func (c *FileCache) Get(symbol string, day time.Time) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.path(symbol, day))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores the payload for a symbol and day, creating the symbol
// directory on first use.
func (c *FileCache) Put(symbol string, day time.Time, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.path(symbol, day)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (c *FileCache) path(symbol string, day time.Time) string {
	return filepath.Join(c.dir, symbol, day.UTC().Format("2006-01-02")+".json")
}
