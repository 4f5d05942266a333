package domain

import "math"

// Position is a world-space location
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the euclidean distance between two positions
func (p Position) DistanceTo(o Position) float64 {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlayerProfile is the equipment and inventory snapshot the dig engine needs.
// It is supplied by the player directory collaborator.
type PlayerProfile struct {
	PlayerID      string   `json:"player_id" validate:"required"`
	ToolID        string   `json:"tool_id" validate:"required"`
	ZoneLevel     int      `json:"zone_level" validate:"gte=0"`
	InventoryFree int      `json:"inventory_free" validate:"gte=0"`
	ActiveBuffs   []string `json:"active_buffs,omitempty"`
	OwnedBuffs    []string `json:"owned_buffs,omitempty"`
}

// HasActiveBuff reports whether buffID is currently active
func (p *PlayerProfile) HasActiveBuff(buffID string) bool {
	for _, b := range p.ActiveBuffs {
		if b == buffID {
			return true
		}
	}
	return false
}

// PityObjective is the quest target pity steers towards: a concrete item or a category
type PityObjective struct {
	ItemID   string `json:"item_id,omitempty"`
	Category string `json:"category,omitempty"`
}

// IsZero reports whether the objective names nothing
func (o PityObjective) IsZero() bool {
	return o.ItemID == "" && o.Category == ""
}

// PityState is the pity collaborator's view of one player
type PityState struct {
	Counter   int           `json:"counter"`
	Saturated bool          `json:"saturated"`
	Objective PityObjective `json:"objective"`
}

// SatisfiedBy reports whether the item fulfills the objective: either the
// concrete item or any member of the category counts.
func (o PityObjective) SatisfiedBy(item *ItemDefinition) bool {
	if item == nil || o.IsZero() {
		return false
	}
	if o.ItemID != "" && item.ID == o.ItemID {
		return true
	}
	return o.Category != "" && item.Category == o.Category
}
