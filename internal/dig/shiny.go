package dig

import (
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// ApplyShiny rolls the bound shiny spot. On success the pool becomes the
// spot's target item alone; on failure the pool is returned untouched.
// target is nil when the spot's item is missing from the catalog.
func ApplyShiny(pool []*domain.ItemDefinition, binding *domain.ShinySpotBinding, target *domain.ItemDefinition, toolID string, luck, roll float64) (out []*domain.ItemDefinition, hit bool) {
	if binding == nil {
		return pool, false
	}
	if target == nil {
		return pool, false
	}
	if !target.AllowsTool(toolID) {
		logger.Error(LogMsgShinyTargetGated, LogFieldSpotID, binding.SpotID, LogFieldItemID, target.ID, LogFieldToolID, toolID)
		return pool, false
	}

	chance := binding.BaseChance
	if binding.Chance != nil {
		chance = binding.Chance(luck)
	}
	if roll < chance {
		return []*domain.ItemDefinition{target}, true
	}
	return pool, false
}
