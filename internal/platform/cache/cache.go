// Package cache provides an explicit, injectable read-side cache with
// size-bounded and time-bounded eviction, so services and their tests stay
// independent of cache lifecycle.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a typed LRU cache whose entries expire after a TTL.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a cache bounded by size entries and ttl per entry.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{lru: expirable.NewLRU[string, V](size, nil, ttl)}
}

// Get retrieves a value; ok is false when absent or expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Set stores a value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Invalidate removes a key, if present.
func (c *Cache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
