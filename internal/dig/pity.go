package dig

import (
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// ApplyPity steers a saturated player's pool toward their objective.
//
// A concrete item id in the pool collapses it to that item; otherwise category
// members in the pool are kept. An objective the pool cannot satisfy passes the
// pool through unchanged.
func ApplyPity(pool []*domain.ItemDefinition, state domain.PityState) (out []*domain.ItemDefinition, forced bool) {
	if !state.Saturated || state.Objective.IsZero() {
		return pool, false
	}
	obj := state.Objective

	if obj.ItemID != "" {
		for _, it := range pool {
			if it.ID == obj.ItemID {
				return []*domain.ItemDefinition{it}, true
			}
		}
	}

	if obj.Category != "" {
		var members []*domain.ItemDefinition
		for _, it := range pool {
			if it.Category == obj.Category {
				members = append(members, it)
			}
		}
		if len(members) > 0 {
			return members, true
		}
	}

	logger.Debug(LogMsgPityUnreachable, LogFieldItemID, obj.ItemID, LogFieldCategory, obj.Category)
	return pool, false
}
