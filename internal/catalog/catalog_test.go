package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/domain"
)

func testConfig() *Config {
	return &Config{
		Version: "1.0",
		Items: []domain.ItemDefinition{
			{ID: "pebble", Rarity: domain.RarityCommon, Category: "rock", Toughness: 1, BaseWeight: 0.2},
			{ID: "old_boot", Rarity: domain.RarityCommon, Category: "junk", Toughness: 1, BaseWeight: 0.8},
			{ID: "amber", Rarity: domain.RarityRare, Category: "gem", Toughness: 3, BaseWeight: 0.1, BaseGems: 5},
			{ID: "dino_bone", Rarity: domain.RarityEpic, Category: "fossil", Toughness: 6, RequiredTools: []string{"iron_shovel"}, BaseWeight: 12},
		},
		Tools: []domain.ToolDefinition{
			{ID: "wood_shovel", Star: 0},
			{ID: "iron_shovel", Star: 2, Abilities: []domain.ToolAbility{{Kind: domain.AbilityXPBonus, Chance: 0.5, Magnitude: 0.2}}},
		},
		Buffs: []domain.BuffDefinition{
			{ID: "lucky_tea", LuckBonus: 0.5},
		},
		ShinySpots: []domain.ShinySpot{
			{ID: "creek", ItemID: "amber", Radius: 3, BaseChance: 0.2, LuckExponent: 1, MaxChance: 0.9},
		},
	}
}

func TestNew_Indexes(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	it, ok := c.Item("amber")
	require.True(t, ok)
	assert.Equal(t, domain.RarityRare, it.Rarity)
	assert.Equal(t, "Amber", it.DisplayName)

	boot, _ := c.Item("old_boot")
	assert.Equal(t, "Old Boot", boot.DisplayName)

	_, ok = c.Item("missing")
	assert.False(t, ok)

	tool, ok := c.Tool("iron_shovel")
	require.True(t, ok)
	assert.Equal(t, 2, tool.Star)

	_, ok = c.Buff("lucky_tea")
	assert.True(t, ok)
	assert.Len(t, c.Spots(), 1)
	assert.Len(t, c.ItemsByRarity(domain.RarityCommon), 2)
}

func TestNew_ItemsOrderedByRarityThenID(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	var ids []string
	for _, it := range c.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"old_boot", "pebble", "amber", "dino_bone"}, ids)
}

func TestCandidatePool_ToolGate(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	pool := c.CandidatePool("wood_shovel")
	for _, it := range pool {
		assert.True(t, it.AllowsTool("wood_shovel"), "item %s leaked into wood_shovel pool", it.ID)
	}
	assert.Len(t, pool, 3)

	iron := c.CandidatePool("iron_shovel")
	assert.Len(t, iron, 4)

	// cached on second call
	assert.Equal(t, 2, c.pools.Len())
	again := c.CandidatePool("iron_shovel")
	assert.Equal(t, iron, again)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		msg     string
	}{
		{
			name:    "nil config",
			mutate:  nil,
			wantErr: ErrInvalidConfig,
			msg:     ErrMsgCatalogNil,
		},
		{
			name:    "no items",
			mutate:  func(c *Config) { c.Items = nil },
			wantErr: ErrInvalidConfig,
			msg:     ErrMsgNoItemsDefined,
		},
		{
			name:    "no tools",
			mutate:  func(c *Config) { c.Tools = nil },
			wantErr: ErrInvalidConfig,
			msg:     ErrMsgNoToolsDefined,
		},
		{
			name:    "duplicate item",
			mutate:  func(c *Config) { c.Items = append(c.Items, c.Items[0]) },
			wantErr: ErrDuplicateID,
			msg:     "pebble",
		},
		{
			name:    "unknown rarity",
			mutate:  func(c *Config) { c.Items[0].Rarity = 9 },
			wantErr: ErrInvalidConfig,
			msg:     "unknown rarity",
		},
		{
			name:    "missing category",
			mutate:  func(c *Config) { c.Items[1].Category = "" },
			wantErr: ErrInvalidConfig,
			msg:     "old_boot",
		},
		{
			name:    "required tool unknown",
			mutate:  func(c *Config) { c.Items[3].RequiredTools = []string{"gold_shovel"} },
			wantErr: ErrInvalidConfig,
			msg:     "gold_shovel",
		},
		{
			name:    "spot targets unknown item",
			mutate:  func(c *Config) { c.ShinySpots[0].ItemID = "ghost" },
			wantErr: ErrInvalidConfig,
			msg:     "ghost",
		},
		{
			name: "category bias above one",
			mutate: func(c *Config) {
				c.Tools[0].Abilities = []domain.ToolAbility{{Kind: domain.AbilityCategoryBias, Chance: 1, Magnitude: 2, Category: "gem"}}
			},
			wantErr: ErrInvalidConfig,
			msg:     "category bias",
		},
		{
			name: "category bias without category",
			mutate: func(c *Config) {
				c.Tools[0].Abilities = []domain.ToolAbility{{Kind: domain.AbilityCategoryBias, Chance: 1, Magnitude: 0.2}}
			},
			wantErr: ErrInvalidConfig,
			msg:     "category bias",
		},
		{
			name:    "buff rarity percent wrong length",
			mutate:  func(c *Config) { c.Buffs[0].RarityPercent = []float64{0.1, 0.2} },
			wantErr: ErrInvalidConfig,
			msg:     "lucky_tea",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if tt.mutate != nil {
				cfg = testConfig()
				tt.mutate(cfg)
			}
			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	content := `{
		"version": "1.0",
		"items": [
			{"id": "pebble", "rarity": 0, "category": "rock", "toughness": 1, "base_weight": 0.2},
			{"id": "star_shard", "display_name": "Star Shard", "rarity": 5, "category": "gem", "toughness": 9, "base_weight": 0.05, "base_gems": 50}
		],
		"tools": [{"id": "wood_shovel", "star": 0}]
	}`
	path := filepath.Join(t.TempDir(), "dig_catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Items(), 2)

	t.Run("file not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read dig catalog")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{invalid`), 0o600))
		_, err := Load(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse dig catalog")
	})
}

func TestLoad_ShippedCatalog(t *testing.T) {
	path := filepath.Join("..", "..", DefaultCatalogPath)
	if _, err := os.Stat(path); err != nil {
		t.Skip("shipped catalog not present")
	}
	c, err := Load(path)
	require.NoError(t, err)
	for r := domain.RarityCommon; r <= domain.RarityMythical; r++ {
		assert.NotEmpty(t, c.ItemsByRarity(r), "no items for rarity %s", r)
	}
	assert.NotEmpty(t, c.CandidatePool("wood_shovel"))
	assert.Len(t, c.Spots(), 3)

	drill, ok := c.Tool("diamond_drill")
	require.True(t, ok)
	bias, ok := drill.Ability(domain.AbilityCategoryBias)
	require.True(t, ok)
	assert.Equal(t, "fossil", bias.Category)
	assert.InDelta(t, 0.2, bias.Magnitude, 1e-9)
}
