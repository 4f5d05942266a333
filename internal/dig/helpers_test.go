package dig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/catalog"
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

func item(id string, r domain.RarityClass, category string, tools ...string) *domain.ItemDefinition {
	return &domain.ItemDefinition{
		ID:            id,
		DisplayName:   id,
		Rarity:        r,
		Category:      category,
		Toughness:     float64(r) + 1,
		RequiredTools: tools,
		BaseWeight:    1,
		BaseGems:      int(r) * 2,
	}
}

func ids(items []*domain.ItemDefinition) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// sequence returns a source that replays values then repeats the last one
func sequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func testCatalogConfig() *catalog.Config {
	return &catalog.Config{
		Items: []domain.ItemDefinition{
			{ID: "pebble", Rarity: domain.RarityCommon, Category: "rock", Toughness: 1, BaseWeight: 0.2},
			{ID: "old_boot", Rarity: domain.RarityCommon, Category: "junk", Toughness: 1, BaseWeight: 0.8, BaseGems: 1},
			{ID: "bottle_cap", Rarity: domain.RarityUncommon, Category: "junk", Toughness: 1.5, BaseWeight: 0.01},
			{ID: "amber", Rarity: domain.RarityRare, Category: "gem", Toughness: 3, BaseWeight: 0.1, BaseGems: 5},
			{ID: "opal", Rarity: domain.RarityEpic, Category: "gem", Toughness: 4, BaseWeight: 0.1, BaseGems: 10},
			{ID: "trilobite", Rarity: domain.RarityEpic, Category: "fossil", Toughness: 5, BaseWeight: 1.5, BaseGems: 12},
			{ID: "dino_bone", Rarity: domain.RarityLegendary, Category: "fossil", Toughness: 7, RequiredTools: []string{"iron_shovel"}, BaseWeight: 12, BaseGems: 25},
			{ID: "star_shard", Rarity: domain.RarityMythical, Category: "gem", Toughness: 9, RequiredTools: []string{"iron_shovel"}, BaseWeight: 0.05, BaseGems: 50},
		},
		Tools: []domain.ToolDefinition{
			{ID: "wood_shovel", Star: 0},
			{ID: "iron_shovel", Star: 3, Abilities: []domain.ToolAbility{
				{Kind: domain.AbilityWeightBonus, Chance: 1, Magnitude: 0.5},
				{Kind: domain.AbilityXPBonus, Chance: 1, Magnitude: 0.25},
				{Kind: domain.AbilityGemBonus, Chance: 0, Magnitude: 1},
				{Kind: domain.AbilityCategoryBias, Chance: 1, Magnitude: 0.2, Category: "fossil"},
			}},
		},
		Buffs: []domain.BuffDefinition{
			{ID: "lucky_tea", LuckBonus: 0.5},
			{ID: "fossil_oil", Category: "fossil", CategoryMultiplier: 3},
		},
		ShinySpots: []domain.ShinySpot{
			{ID: "creek", ItemID: "amber", Radius: 3, BaseChance: 0.5, LuckExponent: 1, MaxChance: 1},
		},
	}
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(testCatalogConfig())
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T, cfg Config, seed uint64) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, newTestCatalog(t), utils.NewSeededSource(seed))
	require.NoError(t, err)
	return e
}
