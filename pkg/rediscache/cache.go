// Package rediscache backs the dashboard render cache with Redis so rendered
// chart HTML survives restarts and is shared between replicas.
package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Cache implements dashboard.RenderCache on top of a Redis client. Redis
// being unreachable degrades to rendering on every call; a broken cache never
// takes the dashboard down.
type Cache struct {
	client    redis.Cmdable
	ttl       time.Duration
	keyPrefix string
}

// Option customizes a Cache.
type Option func(*Cache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces cache keys on shared Redis instances.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) {
		c.keyPrefix = prefix
	}
}

// New builds a Cache around an existing Redis client.
func New(client redis.Cmdable, opts ...Option) *Cache {
	c := &Cache{
		client:    client,
		ttl:       defaultTTL,
		keyPrefix: "nabung:chart:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrRender returns the cached entry or renders and stores a new one.
func (c *Cache) GetOrRender(key string, render func() (string, error)) (string, error) {
	ctx := context.Background()
	redisKey := c.keyPrefix + key

	html, err := c.client.Get(ctx, redisKey).Result()
	if err == nil {
		return html, nil
	}
	if !errors.Is(err, redis.Nil) {
		// Redis down: render uncached.
		return render()
	}

	html, err = render()
	if err != nil {
		return "", err
	}
	_ = c.client.Set(ctx, redisKey, html, c.ttl).Err()
	return html, nil
}

// Purge removes every cached chart under this cache's prefix.
func (c *Cache) Purge(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
