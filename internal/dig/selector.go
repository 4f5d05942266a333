package dig

import (
	"fmt"
	"sort"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

// ItemWeights returns the selection weight of every pool item.
//
// Items sharing a rarity split that rarity's mass evenly, then any category
// multiplier for the item's category is applied.
func ItemWeights(pool []*domain.ItemDefinition, rarity domain.RarityWeightVector, categoryMultipliers map[string]float64) []float64 {
	var counts [domain.RarityCount]int
	for _, it := range pool {
		if it.Rarity.Valid() {
			counts[it.Rarity]++
		}
	}

	weights := make([]float64, len(pool))
	for i, it := range pool {
		if !it.Rarity.Valid() || counts[it.Rarity] == 0 {
			continue
		}
		w := rarity[it.Rarity] / float64(counts[it.Rarity])
		if m, ok := categoryMultipliers[it.Category]; ok {
			w *= m
		}
		weights[i] = utils.NonNegative(w)
	}
	return weights
}

// SelectItem performs the cumulative-weight draw. roll is in [0, 1).
// An empty pool or non-positive total weight is an error, never a default item.
func SelectItem(pool []*domain.ItemDefinition, weights []float64, roll float64) (*domain.ItemDefinition, error) {
	if len(pool) == 0 {
		return nil, domain.ErrEmptyCandidatePool
	}
	if len(weights) != len(pool) {
		return nil, fmt.Errorf("%w: %d weights for %d items", domain.ErrInvalidInput, len(weights), len(pool))
	}

	cumul := make([]float64, len(weights))
	total := 0.0
	last := -1
	for i, w := range weights {
		total += utils.NonNegative(w)
		cumul[i] = total
		if w > 0 {
			last = i
		}
	}
	if total <= 0 {
		return nil, domain.ErrDegenerateWeights
	}

	u := utils.Clamp01(roll) * total
	idx := sort.Search(len(cumul), func(i int) bool { return cumul[i] > u })
	if idx >= len(cumul) {
		idx = last
	}
	return pool[idx], nil
}

// selectWeightedIndex draws an index from raw weights with the same cumulative walk
func selectWeightedIndex(weights []float64, roll float64) int {
	total := 0.0
	for _, w := range weights {
		total += utils.NonNegative(w)
	}
	if total <= 0 {
		return -1
	}
	u := utils.Clamp01(roll) * total
	acc := 0.0
	last := -1
	for i, w := range weights {
		w = utils.NonNegative(w)
		if w > 0 {
			last = i
		}
		acc += w
		if acc > u {
			return i
		}
	}
	return last
}
