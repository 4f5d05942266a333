package dig

import (
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

// Difficulty maps toughness and progression onto the minigame difficulty scalar.
// Rarer items and deeper zones are harder; better tools make it easier.
func Difficulty(cfg DifficultyConfig, in domain.DifficultyInputs) float64 {
	rarity := float64(in.Rarity)
	if !in.Rarity.Valid() {
		rarity = 0
	}
	raw := in.Toughness * (1 + rarity*cfg.RarityFactor + float64(in.ZoneLevel)*cfg.ZoneFactor) /
		(1 + float64(in.ToolStar)*cfg.StarFactor)
	return utils.Clamp(raw, cfg.Min, cfg.Max)
}
