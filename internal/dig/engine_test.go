package dig

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

func baseRequest() ResolveRequest {
	return ResolveRequest{
		Profile: domain.PlayerProfile{
			PlayerID:      "player-1",
			ToolID:        "wood_shovel",
			InventoryFree: 10,
		},
		Luck:         1,
		LifetimeDigs: 50,
	}
}

func debugConfig() Config {
	cfg := DefaultConfig()
	cfg.AllowDebugOverrides = true
	return cfg
}

func TestResolve_ForcedCommonScenario(t *testing.T) {
	cfg := debugConfig()
	cfg.Mutation.Onboarding = OnboardingConfig{StarterItemID: "pebble", ForcedMutationDig: 3, ForcedMutationID: "golden"}
	engine := newTestEngine(t, cfg, 11)
	ctx := context.Background()

	for lifetime := 0; lifetime < 200; lifetime++ {
		req := baseRequest()
		req.LifetimeDigs = lifetime
		req.DiscoverCounts = map[string]int{"old_boot": lifetime}
		req.Overrides = domain.ForceRarity(domain.RarityCommon)

		res, err := engine.Resolve(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, domain.RarityCommon, res.Item.Rarity)

		wantGems := 0
		if res.Item.BaseGems > 0 && res.DiscoverCount%cfg.Rewards.GemDiscoverInterval == 0 {
			wantGems = res.Item.BaseGems
		}
		assert.Equal(t, wantGems, res.GemReward, "lifetime %d item %s", lifetime, res.Item.ID)

		if lifetime == cfg.Mutation.Onboarding.ForcedMutationDig-1 {
			assert.Equal(t, "golden", res.MutationID)
		}
	}
}

func TestResolve_ForcedRarityWithoutMutationSpecialCase(t *testing.T) {
	cfg := debugConfig()
	cfg.Mutation.Strategy = MutationChance
	cfg.Mutation.Chance = 0
	engine := newTestEngine(t, cfg, 3)

	req := baseRequest()
	req.Overrides = domain.ForceRarity(domain.RarityCommon)
	res, err := engine.Resolve(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.RarityCommon, res.Item.Rarity)
	assert.Empty(t, res.MutationID)
	assert.False(t, res.Flags.Mutated)
	assert.Equal(t, domain.RarityWeightVector{1, 0, 0, 0, 0, 0}, res.RarityWeights)
}

func TestResolve_ToolGating(t *testing.T) {
	cfg := DefaultConfig()
	engine := newTestEngine(t, cfg, 21)
	ctx := context.Background()

	req := baseRequest()
	req.Luck = 50 // push mass toward the gated legendary and mythical items
	for i := 0; i < 2000; i++ {
		res, err := engine.Resolve(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.Item.AllowsTool("wood_shovel"), "gated item %s chosen", res.Item.ID)
	}
}

func TestResolve_PityConvergence(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), 5)
	ctx := context.Background()

	t.Run("item objective", func(t *testing.T) {
		req := baseRequest()
		req.Pity = domain.PityState{Saturated: true, Objective: domain.PityObjective{ItemID: "trilobite"}}
		for i := 0; i < 200; i++ {
			res, err := engine.Resolve(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, "trilobite", res.Item.ID)
			assert.True(t, res.Flags.PityForced)
		}
	})

	t.Run("category objective", func(t *testing.T) {
		req := baseRequest()
		req.Pity = domain.PityState{Saturated: true, Objective: domain.PityObjective{Category: "junk"}}
		for i := 0; i < 200; i++ {
			res, err := engine.Resolve(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, "junk", res.Item.Category)
		}
	})

	t.Run("pity wins over shiny spot", func(t *testing.T) {
		spot := &domain.ShinySpot{ID: "creek", ItemID: "amber", Radius: 3, BaseChance: 1, MaxChance: 1}
		req := baseRequest()
		req.Shiny = domain.NewShinySpotBinding(spot)
		req.Pity = domain.PityState{Saturated: true, Objective: domain.PityObjective{ItemID: "pebble"}}
		res, err := engine.Resolve(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "pebble", res.Item.ID)
		assert.False(t, res.Flags.ShinySpot)
	})

	t.Run("unreachable objective resolves normally", func(t *testing.T) {
		req := baseRequest()
		req.Pity = domain.PityState{Saturated: true, Objective: domain.PityObjective{ItemID: "dino_bone"}}
		res, err := engine.Resolve(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Flags.PityForced)
		assert.NotEqual(t, "dino_bone", res.Item.ID)
	})
}

func TestResolve_ShinySpot(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), 8)
	spot := &domain.ShinySpot{ID: "creek", ItemID: "amber", Radius: 3, BaseChance: 1, MaxChance: 1}

	req := baseRequest()
	req.Shiny = domain.NewShinySpotBinding(spot)
	res, err := engine.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "amber", res.Item.ID)
	assert.True(t, res.Flags.ShinySpot)

	spot.BaseChance = 0
	req.Shiny = domain.NewShinySpotBinding(spot)
	hits := 0
	for i := 0; i < 100; i++ {
		res, err := engine.Resolve(context.Background(), req)
		require.NoError(t, err)
		if res.Flags.ShinySpot {
			hits++
		}
	}
	assert.Zero(t, hits)
}

func TestResolve_StarterItemOnFirstDig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mutation.Onboarding.StarterItemID = "old_boot"
	engine := newTestEngine(t, cfg, 1)

	req := baseRequest()
	req.LifetimeDigs = 0
	res, err := engine.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "old_boot", res.Item.ID)
	assert.True(t, res.Flags.Starter)
	assert.True(t, res.Flags.FirstDiscovery)

	req.LifetimeDigs = 1
	res, err = engine.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Flags.Starter)
}

func TestResolve_OverridesIgnoredWhenDisabled(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), 2)

	req := baseRequest()
	req.Overrides = domain.DebugOverrides{ForcedItemID: "trilobite", ForcedMutation: "golden"}
	for i := 0; i < 50; i++ {
		res, err := engine.Resolve(context.Background(), req)
		require.NoError(t, err)
		// digs since mutation is below the cooldown, so only the override could mutate
		assert.Empty(t, res.MutationID)
	}
}

func TestResolve_ForcedItemAndMutation(t *testing.T) {
	engine := newTestEngine(t, debugConfig(), 2)

	req := baseRequest()
	req.Overrides = domain.DebugOverrides{ForcedItemID: "trilobite", ForcedMutation: "crystal"}
	res, err := engine.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "trilobite", res.Item.ID)
	assert.Equal(t, "crystal", res.MutationID)
	assert.Zero(t, res.DigsSinceMutation)

	req.Overrides = domain.DebugOverrides{ForcedItemID: "dino_bone"}
	_, err = engine.Resolve(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req.Overrides = domain.DebugOverrides{ForcedItemID: "ghost"}
	_, err = engine.Resolve(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestResolve_BonusesAndRewards(t *testing.T) {
	engine := newTestEngine(t, debugConfig(), 4)

	req := baseRequest()
	req.Profile.ToolID = "iron_shovel"
	req.Profile.ZoneLevel = 2
	req.Overrides = domain.DebugOverrides{ForcedItemID: "dino_bone"}
	req.DiscoverCounts = map[string]int{"dino_bone": 5}

	res, err := engine.Resolve(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.Modifiers.WeightTriggered)
	assert.True(t, res.Modifiers.XPTriggered)
	assert.False(t, res.Modifiers.GemTriggered)
	assert.Equal(t, 5, res.DiscoverCount)
	assert.False(t, res.Flags.FirstDiscovery)
	assert.Equal(t, 25, res.GemReward)
	assert.Equal(t, int(math.Round(80*1.25)), res.XPReward)
	assert.InDelta(t, 12*1.5, res.Weight, 12*1.5*0.25+0.001)

	assert.Equal(t, domain.DifficultyInputs{Toughness: 7, ToolStar: 3, ZoneLevel: 2, Rarity: domain.RarityLegendary}, res.DifficultyInputs)
	assert.GreaterOrEqual(t, res.Difficulty, DefaultConfig().Difficulty.Min)
	assert.LessOrEqual(t, res.Difficulty, DefaultConfig().Difficulty.Max)
}

func TestResolve_BuffsAddLuckAndAreReported(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), 4)

	req := baseRequest()
	req.Profile.ActiveBuffs = []string{"lucky_tea", "missing_buff", "fossil_oil"}
	res, err := engine.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"lucky_tea", "fossil_oil"}, res.UsedBuffs)
	assert.InDelta(t, 1.5, res.Luck, 1e-9)
}

func TestResolve_InvalidInput(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), 4)
	ctx := context.Background()

	req := baseRequest()
	req.Luck = math.NaN()
	_, err := engine.Resolve(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = baseRequest()
	req.Luck = -1
	_, err = engine.Resolve(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = baseRequest()
	req.Profile.ToolID = "spoon"
	_, err = engine.Resolve(ctx, req)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)

	req = baseRequest()
	req.Profile.PlayerID = ""
	_, err = engine.Resolve(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_ForcedRarityMissingFromPool(t *testing.T) {
	engine := newTestEngine(t, debugConfig(), 4)

	req := baseRequest()
	req.Overrides = domain.ForceRarity(domain.RarityMythical)
	_, err := engine.Resolve(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmptyCandidatePool)
	assert.True(t, domain.IsPreconditionFailure(err))
}

func TestResolve_DegenerateWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rarity.BaseWeights = []float64{0, 0, 0, 0, 0, 0}
	engine := newTestEngine(t, cfg, 4)

	_, err := engine.Resolve(context.Background(), baseRequest())
	assert.ErrorIs(t, err, domain.ErrDegenerateWeights)
}

func TestNewEngine_Validation(t *testing.T) {
	c := newTestCatalog(t)

	_, err := NewEngine(DefaultConfig(), nil, utils.RandomFloat)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewEngine(DefaultConfig(), c, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := DefaultConfig()
	bad.Rarity.BaseWeights = []float64{1}
	_, err = NewEngine(bad, c, utils.RandomFloat)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
