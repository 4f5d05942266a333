package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// cachedPool wraps a candidate pool with version metadata for invalidation
type cachedPool struct {
	Version string
	Items   []*domain.ItemDefinition
}

// poolCache keeps the tool-gated candidate pool per tool id.
// The catalog is immutable so entries only expire by TTL or eviction.
type poolCache struct {
	lru *expirable.LRU[string, *cachedPool]
}

func newPoolCache(size int, ttl time.Duration) *poolCache {
	return &poolCache{
		lru: expirable.NewLRU[string, *cachedPool](size, nil, ttl),
	}
}

// Get returns (pool, true) if cached under the current schema version
func (c *poolCache) Get(toolID string) ([]*domain.ItemDefinition, bool) {
	entry, found := c.lru.Get(toolID)
	if !found {
		return nil, false
	}
	if entry.Version != PoolCacheSchemaVersion {
		c.lru.Remove(toolID)
		return nil, false
	}
	return entry.Items, true
}

func (c *poolCache) Set(toolID string, items []*domain.ItemDefinition) {
	c.lru.Add(toolID, &cachedPool{
		Version: PoolCacheSchemaVersion,
		Items:   items,
	})
}

func (c *poolCache) Len() int {
	return c.lru.Len()
}

func (c *poolCache) Clear() {
	c.lru.Purge()
}
