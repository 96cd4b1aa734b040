package posapi

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	dashboard "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

const defaultAnalysisTTL = 5 * time.Minute

// CachedClient wraps a Client and caches the slow AI analysis endpoints for a
// TTL. Concurrent fetches of the same key collapse into a single upstream
// request. The fast CRUD endpoints pass through uncached.
type CachedClient struct {
	Client

	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu       sync.RWMutex
	analysis map[string]cachedAnalysis
	insights *cachedInsights
}

type cachedAnalysis struct {
	value     dashboard.DashboardAnalysis
	expiresAt time.Time
}

type cachedInsights struct {
	value     dashboard.FinancialInsights
	expiresAt time.Time
}

// CachedClientOption customizes a CachedClient.
type CachedClientOption func(*CachedClient)

// WithAnalysisTTL overrides the default cache lifetime.
func WithAnalysisTTL(ttl time.Duration) CachedClientOption {
	return func(c *CachedClient) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewCachedClient wraps client with analysis caching.
func NewCachedClient(client Client, opts ...CachedClientOption) *CachedClient {
	cached := &CachedClient{
		Client:   client,
		ttl:      defaultAnalysisTTL,
		now:      time.Now,
		analysis: make(map[string]cachedAnalysis),
	}
	for _, opt := range opts {
		opt(cached)
	}
	return cached
}

// FetchDashboardAnalysis serves from cache when fresh, otherwise fetches once
// per location regardless of concurrent callers.
func (c *CachedClient) FetchDashboardAnalysis(ctx context.Context, location string) (dashboard.DashboardAnalysis, error) {
	c.mu.RLock()
	entry, ok := c.analysis[location]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	result, err, _ := c.group.Do("analysis:"+location, func() (any, error) {
		analysis, err := c.Client.FetchDashboardAnalysis(ctx, location)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.analysis[location] = cachedAnalysis{value: analysis, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return analysis, nil
	})
	if err != nil {
		return dashboard.DashboardAnalysis{}, err
	}
	return result.(dashboard.DashboardAnalysis), nil
}

// FetchInsights serves from cache when fresh, refreshing at most once across
// concurrent callers.
func (c *CachedClient) FetchInsights(ctx context.Context) (dashboard.FinancialInsights, error) {
	c.mu.RLock()
	entry := c.insights
	c.mu.RUnlock()
	if entry != nil && c.now().Before(entry.expiresAt) {
		return cloneInsights(entry.value), nil
	}

	result, err, _ := c.group.Do("insights", func() (any, error) {
		insights, err := c.Client.FetchInsights(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.insights = &cachedInsights{value: insights, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return insights, nil
	})
	if err != nil {
		return dashboard.FinancialInsights{}, err
	}
	return cloneInsights(result.(dashboard.FinancialInsights)), nil
}

// Invalidate drops all cached analysis entries. Call after a CSV import so the
// next render reflects the new data.
func (c *CachedClient) Invalidate() {
	c.mu.Lock()
	c.analysis = make(map[string]cachedAnalysis)
	c.insights = nil
	c.mu.Unlock()
}

// CacheSize reports the number of live analysis entries, expired included.
func (c *CachedClient) CacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	size := len(c.analysis)
	if c.insights != nil {
		size++
	}
	return size
}
