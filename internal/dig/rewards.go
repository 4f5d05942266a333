package dig

import (
	"math"

	"github.com/osse101/DigSite_Go/internal/domain"
)

// GemReward pays the item's base gems, boosted by gemBonus, when discoverCount
// is a multiple of interval. The first discovery always counts.
func GemReward(item *domain.ItemDefinition, discoverCount, interval int, gemBonus float64) int {
	if item == nil || item.BaseGems <= 0 || interval < 1 {
		return 0
	}
	if discoverCount%interval != 0 {
		return 0
	}
	return int(math.Round(float64(item.BaseGems) * (1 + gemBonus)))
}

// XPReward returns the xp for a rarity, boosted by xpBonus
func XPReward(cfg RewardsConfig, rarity domain.RarityClass, xpBonus float64) int {
	if !rarity.Valid() || int(rarity) >= len(cfg.XPByRarity) {
		return 0
	}
	return int(math.Round(float64(cfg.XPByRarity[rarity]) * (1 + xpBonus)))
}

// DugWeight varies the item's base weight by +/- spread and applies the weight bonus.
// The result is rounded to grams.
func DugWeight(item *domain.ItemDefinition, spread, weightBonus, roll float64) float64 {
	if item == nil || item.BaseWeight <= 0 {
		return 0
	}
	jitter := 1 + (roll*2-1)*spread
	w := item.BaseWeight * jitter * (1 + weightBonus)
	return math.Round(w*1000) / 1000
}
