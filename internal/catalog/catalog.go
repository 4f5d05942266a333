package catalog

import (
	"fmt"
	"sort"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// Catalog is the read-only lookup of items, tools, buffs and shiny spots.
// One instance is built at start-up and shared by pointer.
type Catalog struct {
	items   map[string]*domain.ItemDefinition
	ordered []*domain.ItemDefinition
	tools   map[string]*domain.ToolDefinition
	buffs   map[string]*domain.BuffDefinition
	spots   []*domain.ShinySpot
	pools   *poolCache
}

// Load reads, validates and indexes the catalog at path
func Load(path string) (*Catalog, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	c, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info(LogMsgCatalogLoaded,
		LogFieldPath, path,
		"items", len(c.ordered),
		"tools", len(c.tools),
		"buffs", len(c.buffs),
		"shiny_spots", len(c.spots))
	return c, nil
}

// New validates cfg and builds a Catalog from it
func New(cfg *Config) (*Catalog, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	c := &Catalog{
		items:   make(map[string]*domain.ItemDefinition, len(cfg.Items)),
		ordered: make([]*domain.ItemDefinition, 0, len(cfg.Items)),
		tools:   make(map[string]*domain.ToolDefinition, len(cfg.Tools)),
		buffs:   make(map[string]*domain.BuffDefinition, len(cfg.Buffs)),
		spots:   make([]*domain.ShinySpot, 0, len(cfg.ShinySpots)),
		pools:   newPoolCache(PoolCacheSize, PoolCacheTTL),
	}
	for i := range cfg.Items {
		it := cfg.Items[i]
		c.items[it.ID] = &it
		c.ordered = append(c.ordered, &it)
	}
	// Stable rarity-then-id order keeps draws reproducible under a seeded source
	sort.SliceStable(c.ordered, func(a, b int) bool {
		if c.ordered[a].Rarity != c.ordered[b].Rarity {
			return c.ordered[a].Rarity < c.ordered[b].Rarity
		}
		return c.ordered[a].ID < c.ordered[b].ID
	})
	for i := range cfg.Tools {
		t := cfg.Tools[i]
		c.tools[t.ID] = &t
	}
	for i := range cfg.Buffs {
		b := cfg.Buffs[i]
		c.buffs[b.ID] = &b
	}
	for i := range cfg.ShinySpots {
		s := cfg.ShinySpots[i]
		c.spots = append(c.spots, &s)
	}
	return c, nil
}

// Item looks up an item definition. A miss is logged as a configuration gap.
func (c *Catalog) Item(id string) (*domain.ItemDefinition, bool) {
	it, ok := c.items[id]
	if !ok {
		logger.Error(LogMsgItemMissing, LogFieldItemID, id)
	}
	return it, ok
}

// Tool looks up a tool definition. A miss is logged as a configuration gap.
func (c *Catalog) Tool(id string) (*domain.ToolDefinition, bool) {
	t, ok := c.tools[id]
	if !ok {
		logger.Error(LogMsgToolMissing, LogFieldToolID, id)
	}
	return t, ok
}

// Buff looks up a buff definition. A miss is logged as a configuration gap.
func (c *Catalog) Buff(id string) (*domain.BuffDefinition, bool) {
	b, ok := c.buffs[id]
	if !ok {
		logger.Error(LogMsgBuffMissing, LogFieldBuffID, id)
	}
	return b, ok
}

// HasItem reports whether id exists without logging a miss
func (c *Catalog) HasItem(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Items returns every item ordered by rarity then id
func (c *Catalog) Items() []*domain.ItemDefinition {
	out := make([]*domain.ItemDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ItemsByRarity returns the items of one rarity class
func (c *Catalog) ItemsByRarity(r domain.RarityClass) []*domain.ItemDefinition {
	var out []*domain.ItemDefinition
	for _, it := range c.ordered {
		if it.Rarity == r {
			out = append(out, it)
		}
	}
	return out
}

// Buffs returns every buff definition sorted by id
func (c *Catalog) Buffs() []*domain.BuffDefinition {
	out := make([]*domain.BuffDefinition, 0, len(c.buffs))
	for _, b := range c.buffs {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Spots returns the shiny spots in catalog order
func (c *Catalog) Spots() []*domain.ShinySpot {
	out := make([]*domain.ShinySpot, len(c.spots))
	copy(out, c.spots)
	return out
}

// CandidatePool returns the items the tool is allowed to dig.
// The returned slice is shared; callers must not modify it.
func (c *Catalog) CandidatePool(toolID string) []*domain.ItemDefinition {
	if pool, ok := c.pools.Get(toolID); ok {
		return pool
	}

	pool := make([]*domain.ItemDefinition, 0, len(c.ordered))
	for _, it := range c.ordered {
		if it.AllowsTool(toolID) {
			pool = append(pool, it)
		}
	}
	if len(pool) == 0 {
		logger.Warn(LogMsgEmptyToolPool, LogFieldToolID, toolID)
	}
	c.pools.Set(toolID, pool)
	return pool
}
