// Package cache memoizes API responses. Entries are keyed by route and
// arguments and the whole cache is flushed whenever the catalog reloads.
package cache

import (
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with hit accounting.
type Cache struct {
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache whose entries expire after ttl.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

// Key joins a route and its arguments into a cache key. Each argument is
// query-escaped, so the separator never occurs inside one.
func Key(route string, args ...string) string {
	escaped := make([]string, len(args))
	for i, a := range args {
		escaped[i] = url.QueryEscape(a)
	}
	return route + "?" + strings.Join(escaped, "&")
}

// Get retrieves a value.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.store.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// GetOrSet returns the cached value for key, computing and storing it on
// a miss.
func (c *Cache) GetOrSet(key string, compute func() any) any {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Set(key, v)
	return v
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.store.Flush()
}

// Stats describes cache usage.
type Stats struct {
	Items  int   `json:"items"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Items:  c.store.ItemCount(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
