package dig

import (
	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

// CategoryBias steers the rarest bucket of a category
type CategoryBias struct {
	Category string
	Percent  float64
}

// IsZero reports whether no bias applies
func (b CategoryBias) IsZero() bool {
	return b.Category == ""
}

// categorySubset returns the members of category at the highest rarity present
// among that category's members in the pool.
func categorySubset(pool []*domain.ItemDefinition, category string) map[*domain.ItemDefinition]bool {
	top := domain.NoForcedRarity
	for _, it := range pool {
		if it.Category == category && it.Rarity > top {
			top = it.Rarity
		}
	}
	subset := make(map[*domain.ItemDefinition]bool)
	if top == domain.NoForcedRarity {
		return subset
	}
	for _, it := range pool {
		if it.Category == category && it.Rarity == top {
			subset[it] = true
		}
	}
	return subset
}

// ApplyCategoryBias runs the hit-or-miss category branch.
//
// The pool becomes either the category's top-rarity subset or its complement,
// never a blend. The subset is chosen when roll < clamp01(share + bias), where
// share is the subset's fraction of the pool's selection weight. weights must
// be parallel to pool. hit reports whether the subset was chosen.
func ApplyCategoryBias(pool []*domain.ItemDefinition, weights []float64, bias CategoryBias, roll float64) (out []*domain.ItemDefinition, hit bool) {
	if bias.IsZero() || len(pool) == 0 {
		return pool, false
	}
	subset := categorySubset(pool, bias.Category)
	if len(subset) == 0 {
		return pool, false
	}

	var subsetWeight, total float64
	for i, it := range pool {
		w := 0.0
		if i < len(weights) {
			w = weights[i]
		}
		total += w
		if subset[it] {
			subsetWeight += w
		}
	}
	share := 0.0
	if total > 0 {
		share = subsetWeight / total
	}

	inside := make([]*domain.ItemDefinition, 0, len(subset))
	outside := make([]*domain.ItemDefinition, 0, len(pool)-len(subset))
	for _, it := range pool {
		if subset[it] {
			inside = append(inside, it)
		} else {
			outside = append(outside, it)
		}
	}

	if roll < utils.Clamp01(share+bias.Percent) || len(outside) == 0 {
		return inside, true
	}
	return outside, false
}
