// Package cache holds the feed page response cache: a TTL-bound in-memory
// tier with an optional Redis tier behind it, so multiple serving instances
// can share pages.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type PageCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	rdb        *redis.Client
	now        func() time.Time
}

type Option func(*PageCache)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *PageCache) {
		c.now = now
	}
}

// WithRedis enables the second tier. A nil client leaves it disabled.
func WithRedis(rdb *redis.Client) Option {
	return func(c *PageCache) {
		c.rdb = rdb
	}
}

func New(ttl time.Duration, maxEntries int, opts ...Option) *PageCache {
	c := &PageCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Key builds a deterministic cache key from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))

	return fmt.Sprintf("shorts:%x", hash[:12])
}

// Get tries the memory tier first, then Redis. A Redis hit repopulates the
// memory tier.
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if c.now().Before(e.expiresAt) {
			c.mu.Unlock()

			return e.data, true
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	c.store(key, data)

	return data, true
}

// Set stores the value in both tiers.
func (c *PageCache) Set(ctx context.Context, key string, data []byte) {
	c.store(key, data)
	if c.rdb != nil {
		c.rdb.Set(ctx, key, data, c.ttl)
	}
}

func (c *PageCache) store(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictLocked()
	c.entries[key] = entry{
		data:      data,
		expiresAt: c.now().Add(c.ttl),
	}
}

// evictLocked drops expired entries, then the oldest ones until a slot is
// free. Callers hold the lock.
func (c *PageCache) evictLocked() {
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	for len(c.entries) >= c.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for key, e := range c.entries {
			if oldestKey == "" || e.expiresAt.Before(oldest) {
				oldestKey = key
				oldest = e.expiresAt
			}
		}
		delete(c.entries, oldestKey)
	}
}
