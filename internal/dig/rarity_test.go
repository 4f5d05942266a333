package dig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/DigSite_Go/internal/domain"
)

func TestCalculateRarityWeights_ForcedRarityIsOneHot(t *testing.T) {
	cfg := DefaultConfig().Rarity
	forced := domain.RarityEpic

	v := CalculateRarityWeights(cfg, RarityInputs{
		ToolStar:     5,
		Luck:         3,
		Buffs:        []*domain.BuffDefinition{{ID: "b", RarityPercent: []float64{1, 1, 1, 1, 1, 1}}},
		ForcedRarity: &forced,
	})

	for i, w := range v {
		if domain.RarityClass(i) == forced {
			assert.Equal(t, 1.0, w)
		} else {
			assert.Zero(t, w, "bucket %d should be empty", i)
		}
	}
}

func TestCalculateRarityWeights_NeutralInputsKeepBase(t *testing.T) {
	cfg := DefaultConfig().Rarity
	v := CalculateRarityWeights(cfg, RarityInputs{Luck: 1})
	for i := range v {
		assert.InDelta(t, cfg.BaseWeights[i], v[i], 1e-9)
	}
}

func TestCalculateRarityWeights_ProgressionShiftsMassUp(t *testing.T) {
	cfg := DefaultConfig().Rarity

	low := CalculateRarityWeights(cfg, RarityInputs{Luck: 1}).Normalized()
	highStar := CalculateRarityWeights(cfg, RarityInputs{Luck: 1, ToolStar: 5, ZoneLevel: 4}).Normalized()
	lucky := CalculateRarityWeights(cfg, RarityInputs{Luck: 4}).Normalized()

	assert.Greater(t, highStar[domain.RarityMythical], low[domain.RarityMythical])
	assert.Less(t, highStar[domain.RarityCommon], low[domain.RarityCommon])
	assert.Greater(t, lucky[domain.RarityMythical], low[domain.RarityMythical])
	assert.Less(t, lucky[domain.RarityCommon], low[domain.RarityCommon])
}

func TestCalculateRarityWeights_BuffAddsProportionalMass(t *testing.T) {
	cfg := DefaultConfig().Rarity
	base := CalculateRarityWeights(cfg, RarityInputs{Luck: 1})
	total := base.Sum()

	buff := &domain.BuffDefinition{ID: "rare_dust", RarityPercent: []float64{0, 0, 0.1, 0, 0, 0.05}}
	v := CalculateRarityWeights(cfg, RarityInputs{Luck: 1, Buffs: []*domain.BuffDefinition{buff, buff}})

	assert.InDelta(t, base[domain.RarityRare]+2*total*0.1, v[domain.RarityRare], 1e-9)
	assert.InDelta(t, base[domain.RarityMythical]+2*total*0.05, v[domain.RarityMythical], 1e-9)
	assert.InDelta(t, base[domain.RarityCommon], v[domain.RarityCommon], 1e-9)
}

func TestCalculateRarityWeights_ClampsBadContributions(t *testing.T) {
	cfg := RarityConfig{BaseWeights: []float64{10, -5, math.NaN(), 1, 1, 1}, Steepness: 1}
	buff := &domain.BuffDefinition{ID: "cursed", RarityPercent: []float64{0, 0, 0, -10, 0, 0}}

	v := CalculateRarityWeights(cfg, RarityInputs{Luck: math.NaN(), Buffs: []*domain.BuffDefinition{buff}})

	for i, w := range v {
		assert.False(t, math.IsNaN(w), "bucket %d is NaN", i)
		assert.GreaterOrEqual(t, w, 0.0, "bucket %d is negative", i)
	}
	assert.Equal(t, 10.0, v[domain.RarityCommon])
}

func TestCalculateRarityWeights_ZeroLuckKeepsCommon(t *testing.T) {
	v := CalculateRarityWeights(DefaultConfig().Rarity, RarityInputs{Luck: 0})
	assert.Greater(t, v.Sum(), 0.0)
	assert.Equal(t, v.Sum(), v[domain.RarityCommon])
}
