package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated widget fetches skip
// the go-echarts render. The Redis-backed implementation lives in
// pkg/rediscache; ChartCache is the in-process default.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache keeps rendered charts in memory for a fixed TTL. Expired
// entries are swept on write so the map does not grow unbounded between
// renders of the same widget set.
type ChartCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]chartEntry
}

type chartEntry struct {
	html       string
	renderedAt time.Time
}

func (e chartEntry) fresh(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.renderedAt) < ttl
}

// NewChartCache builds a cache with the provided TTL. A zero or negative
// TTL disables caching entirely.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: make(map[string]chartEntry),
	}
}

// GetOrRender returns the cached markup for key, rendering and storing it
// when absent or stale. Render failures are returned without being cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	now := time.Now()

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && entry.fresh(c.ttl, now) {
		return entry.html, nil
	}

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.sweepLocked(now)
	c.entries[key] = chartEntry{html: html, renderedAt: now}
	c.mu.Unlock()
	return html, nil
}

// sweepLocked drops expired entries. Callers hold c.mu.
func (c *ChartCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if !entry.fresh(c.ttl, now) {
			delete(c.entries, key)
		}
	}
}

// configHash returns a deterministic cache-key fragment for a widget
// configuration. json.Marshal sorts map keys, so equal configurations hash
// equally regardless of insertion order.
func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
