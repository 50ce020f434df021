// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache provides thread-safe LRU caching of generation results keyed by
// the request that produced them.
type ResultCache[V any] struct {
	cache *lru.Cache[string, V]
}

// NewResultCache creates a new LRU cache with the specified maximum number of items.
func NewResultCache[V any](maxItems int) (*ResultCache[V], error) {
	c, err := lru.New[string, V](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache[V]{cache: c}, nil
}

// Key derives a cache key from request parts. Parts are length-prefixed so
// that ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a result by key.
// Returns the result and true if found, the zero value and false otherwise.
func (c *ResultCache[V]) Get(key string) (V, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a result in the cache.
func (c *ResultCache[V]) Put(key string, v V) {
	c.cache.Add(key, v)
}

// Len returns the current number of items in the cache.
func (c *ResultCache[V]) Len() int {
	return c.cache.Len()
}
