package server

import (
	"sync"
	"time"

	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/platform"
)

// WindowCache provides a TTL-based cache for the window list.
type WindowCache struct {
	mu        sync.Mutex
	windows   []model.Window
	timestamp time.Time
	ttl       time.Duration
}

// NewWindowCache creates a new cache. A ttl of 0 disables caching.
func NewWindowCache(ttl time.Duration) *WindowCache {
	return &WindowCache{ttl: ttl}
}

// ListWindows returns the cached list if within TTL, otherwise lists fresh.
func (c *WindowCache) ListWindows(dir platform.WindowDirectory) ([]model.Window, error) {
	if c.ttl == 0 {
		return dir.ListWindows()
	}

	c.mu.Lock()
	if c.windows != nil && time.Since(c.timestamp) < c.ttl {
		windows := c.windows
		c.mu.Unlock()
		return windows, nil
	}
	c.mu.Unlock()

	windows, err := dir.ListWindows()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.windows = windows
	c.timestamp = time.Now()
	c.mu.Unlock()

	return windows, nil
}

// Invalidate clears the cache.
func (c *WindowCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows = nil
}
