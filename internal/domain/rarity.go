package domain

// RarityClass is the ordinal rarity tier assigned to every diggable item.
type RarityClass int

const (
	RarityCommon RarityClass = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythical
)

// RarityCount is the number of rarity buckets in a RarityWeightVector
const RarityCount = 6

// NoForcedRarity disables the forced-rarity debug override
const NoForcedRarity RarityClass = -1

// Valid reports whether r is one of the six defined tiers
func (r RarityClass) Valid() bool {
	return r >= RarityCommon && r <= RarityMythical
}

func (r RarityClass) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	case RarityMythical:
		return "Mythical"
	default:
		return "Unknown"
	}
}

// RarityWeightVector holds one non-negative weight per rarity class.
// It sums arbitrarily and is normalized only at draw time.
type RarityWeightVector [RarityCount]float64

// Sum returns the total mass of the vector
func (v RarityWeightVector) Sum() float64 {
	total := 0.0
	for _, w := range v {
		total += w
	}
	return total
}

// Normalized returns the vector scaled to sum to 1.
// A vector with non-positive sum is returned unchanged.
func (v RarityWeightVector) Normalized() RarityWeightVector {
	total := v.Sum()
	if total <= 0 {
		return v
	}
	var out RarityWeightVector
	for i, w := range v {
		out[i] = w / total
	}
	return out
}
