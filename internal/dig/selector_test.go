package dig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/utils"
)

// chiSquareCritical5DF is the 0.999 quantile of chi-square with 5 degrees of freedom
const chiSquareCritical5DF = 20.515

func onePerRarity() []*domain.ItemDefinition {
	return []*domain.ItemDefinition{
		item("c", domain.RarityCommon, "x"),
		item("u", domain.RarityUncommon, "x"),
		item("r", domain.RarityRare, "x"),
		item("e", domain.RarityEpic, "x"),
		item("l", domain.RarityLegendary, "x"),
		item("m", domain.RarityMythical, "x"),
	}
}

func TestSelectItem_ConvergesToNormalizedVector(t *testing.T) {
	vectors := []domain.RarityWeightVector{
		{60, 25, 10, 4, 0.9, 0.1},
		{1, 1, 1, 1, 1, 1},
		{5, 0, 3, 0, 2, 7},
	}
	const trials = 60000

	for vi, vec := range vectors {
		pool := onePerRarity()
		weights := ItemWeights(pool, vec, nil)
		rnd := utils.NewSeededSource(uint64(1000 + vi))

		counts := make(map[string]int)
		for i := 0; i < trials; i++ {
			it, err := SelectItem(pool, weights, rnd())
			require.NoError(t, err)
			counts[it.ID]++
		}

		norm := vec.Normalized()
		chi := 0.0
		for i, it := range pool {
			expected := norm[i] * trials
			if expected == 0 {
				assert.Zero(t, counts[it.ID], "zero-weight item %s was drawn", it.ID)
				continue
			}
			diff := float64(counts[it.ID]) - expected
			chi += diff * diff / expected
		}
		assert.Less(t, chi, chiSquareCritical5DF, "vector %d: chi-square %.2f", vi, chi)
	}
}

func TestItemWeights_SplitsRarityMassEvenly(t *testing.T) {
	pool := []*domain.ItemDefinition{
		item("a", domain.RarityCommon, "rock"),
		item("b", domain.RarityCommon, "rock"),
		item("c", domain.RarityCommon, "fossil"),
		item("d", domain.RarityRare, "gem"),
	}
	vec := domain.RarityWeightVector{90, 0, 10, 0, 0, 0}

	w := ItemWeights(pool, vec, nil)
	assert.InDeltaSlice(t, []float64{30, 30, 30, 10}, w, 1e-9)

	boosted := ItemWeights(pool, vec, map[string]float64{"fossil": 2})
	assert.InDeltaSlice(t, []float64{30, 30, 60, 10}, boosted, 1e-9)
}

func TestSelectItem_Degenerate(t *testing.T) {
	pool := onePerRarity()

	_, err := SelectItem(nil, nil, 0.5)
	assert.ErrorIs(t, err, domain.ErrEmptyCandidatePool)

	_, err = SelectItem(pool, make([]float64, len(pool)), 0.5)
	assert.ErrorIs(t, err, domain.ErrDegenerateWeights)

	_, err = SelectItem(pool, []float64{1}, 0.5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSelectItem_BoundaryRolls(t *testing.T) {
	pool := onePerRarity()
	weights := []float64{0, 1, 0, 1, 0, 0}

	first, err := SelectItem(pool, weights, 0)
	require.NoError(t, err)
	assert.Equal(t, "u", first.ID)

	last, err := SelectItem(pool, weights, 0.9999999)
	require.NoError(t, err)
	assert.Equal(t, "e", last.ID)

	// a roll of exactly 1 never lands on a trailing zero-weight item
	edge, err := SelectItem(pool, weights, 1)
	require.NoError(t, err)
	assert.Equal(t, "e", edge.ID)
}
