package domain

import "math"

// ShinySpot is a location-bound trigger volume that can guarantee a target item
type ShinySpot struct {
	ID              string   `json:"id" validate:"required"`
	ItemID          string   `json:"item_id" validate:"required"`
	Position        Position `json:"position"`
	Radius          float64  `json:"radius" validate:"gt=0"`
	RequiredTools   []string `json:"required_tools,omitempty"`
	StarRequirement int      `json:"star_requirement" validate:"gte=0"`
	BaseChance      float64  `json:"base_chance" validate:"gte=0,lte=1"`
	LuckExponent    float64  `json:"luck_exponent" validate:"gte=0"`
	MaxChance       float64  `json:"max_chance" validate:"gte=0,lte=1"`
}

// Contains reports whether pos is inside the spot's trigger volume
func (s *ShinySpot) Contains(pos Position) bool {
	return s.Position.DistanceTo(pos) <= s.Radius
}

// AllowsTool reports whether the tool satisfies the spot's requirement
func (s *ShinySpot) AllowsTool(toolID string) bool {
	if len(s.RequiredTools) == 0 {
		return true
	}
	for _, t := range s.RequiredTools {
		if t == toolID {
			return true
		}
	}
	return false
}

// Chance returns the override roll probability for a luck scalar.
// Luck 1.0 yields BaseChance; the result never exceeds MaxChance.
func (s *ShinySpot) Chance(luck float64) float64 {
	if luck <= 0 || math.IsNaN(luck) {
		return 0
	}
	c := s.BaseChance * math.Pow(luck, s.LuckExponent)
	ceiling := s.MaxChance
	if ceiling <= 0 {
		ceiling = 1
	}
	return math.Min(c, ceiling)
}

// ShinySpotBinding is the closest eligible spot bound to a player for one dig attempt
type ShinySpotBinding struct {
	SpotID          string
	ItemID          string
	StarRequirement int
	BaseChance      float64
	Chance          func(luck float64) float64
}

// NewShinySpotBinding binds a spot for a dig attempt
func NewShinySpotBinding(spot *ShinySpot) *ShinySpotBinding {
	return &ShinySpotBinding{
		SpotID:          spot.ID,
		ItemID:          spot.ItemID,
		StarRequirement: spot.StarRequirement,
		BaseChance:      spot.BaseChance,
		Chance:          spot.Chance,
	}
}
