// Package cache provides a small in-memory TTL cache.
//
// Entries expire lazily: an expired entry is dropped the next time it is read.
// There is no background sweeper and no size bound.
//
// Each key carries a version that Delete bumps. A reader that loads a value
// from its source takes Version first and stores with SetIfVersion, so a load
// that raced an invalidation is discarded instead of cached.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// TTL is a thread-safe cache whose entries live for a fixed duration.
// Create one per use site with New; there is no package-level instance.
type TTL[T any] struct {
	mu       sync.Mutex
	items    map[string]entry[T]
	versions map[string]uint64
	ttl      time.Duration
	now      func() time.Time
}

// New creates a cache with the given TTL. A non-positive TTL disables caching:
// Set becomes a no-op and Get always misses.
func New[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{
		items:    make(map[string]entry[T]),
		versions: make(map[string]uint64),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get retrieves a value. Returns false if not found or expired.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.items, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the configured TTL.
func (c *TTL[T]) Set(key string, value T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// SetIfVersion stores a value only if key has not been deleted since version
// was read. Reports whether the value was stored.
func (c *TTL[T]) SetIfVersion(key string, value T, version uint64) bool {
	if c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versions[key] != version {
		return false
	}
	c.items[key] = entry[T]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	return true
}

// Version returns the current version of key.
func (c *TTL[T]) Version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key]
}

// Delete removes a value and bumps the key's version.
func (c *TTL[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	c.versions[key]++
}

// Len returns the number of stored entries, expired ones included.
func (c *TTL[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
