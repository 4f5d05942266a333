package dig

import (
	"math"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

// RarityInputs are the per-dig values that shape the rarity weight vector
type RarityInputs struct {
	ToolStar     int
	ZoneLevel    int
	Luck         float64
	Buffs        []*domain.BuffDefinition
	ForcedRarity *domain.RarityClass // nil unless a debug override forces a tier
}

// CalculateRarityWeights builds the rarity weight vector for one dig attempt.
//
// Base weights are scaled by the progression curve, then by luck using the same
// curve shape, then each active buff adds total*pct[i] to bucket i. A forced
// rarity collapses the vector to one-hot and skips all biasing.
func CalculateRarityWeights(cfg RarityConfig, in RarityInputs) domain.RarityWeightVector {
	var v domain.RarityWeightVector

	if in.ForcedRarity != nil && in.ForcedRarity.Valid() {
		v[*in.ForcedRarity] = 1
		return v
	}

	progression := 1 + float64(in.ToolStar)*cfg.StarFactor + float64(in.ZoneLevel)*cfg.ZoneFactor
	luck := utils.NonNegative(in.Luck)

	for i := 0; i < domain.RarityCount && i < len(cfg.BaseWeights); i++ {
		exp := float64(i) * cfg.Steepness
		w := cfg.BaseWeights[i] * curve(progression, exp) * curve(luck, exp)
		v[i] = utils.NonNegative(w)
	}

	total := v.Sum()
	var added domain.RarityWeightVector
	for _, b := range in.Buffs {
		if b == nil || len(b.RarityPercent) != domain.RarityCount {
			continue
		}
		for i, pct := range b.RarityPercent {
			added[i] += total * pct
		}
	}
	for i := range v {
		v[i] = utils.NonNegative(v[i] + added[i])
	}
	return v
}

// curve is base^exp with 0^0 == 1 so luck 0 keeps the common bucket alive
func curve(base, exp float64) float64 {
	if exp == 0 {
		return 1
	}
	return math.Pow(base, exp)
}
