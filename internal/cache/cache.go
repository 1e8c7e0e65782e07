// Package cache keeps per-file results keyed by a content hash so unchanged
// files are not rescanned between runs in the same process.
package cache

import (
	"sync"

	"github.com/minio/highwayhash"
)

var key = []byte("hatchgate-content-cache-key-0001")

// Sum はコンテンツの 64bit HighwayHash を返します。
func Sum(content string) uint64 {
	return highwayhash.Sum64([]byte(content), key)
}

type entry[V any] struct {
	sum   uint64
	value V
}

// Cache maps a path to the value computed for its last seen content.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	hits    int
	misses  int
}

func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]entry[V])}
}

// Get returns the cached value when content hashes to the stored sum.
func (c *Cache[V]) Get(path, content string) (V, bool) {
	sum := Sum(content)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || e.sum != sum {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Put stores value for path under the hash of content.
func (c *Cache[V]) Put(path, content string, value V) {
	sum := Sum(content)
	c.mu.Lock()
	c.entries[path] = entry[V]{sum: sum, value: value}
	c.mu.Unlock()
}

// Retain drops every path not in keep and returns how many were removed.
func (c *Cache[V]) Retain(keep []string) int {
	set := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		set[p] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for p := range c.entries {
		if _, ok := set[p]; !ok {
			delete(c.entries, p)
			removed++
		}
	}
	return removed
}

// Len は保持しているエントリ数を返します。
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts since creation.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
