package domain

// ItemDefinition is an immutable catalog entry for something that can be dug up.
// It is owned by the catalog and shared by pointer; nothing mutates it after load.
type ItemDefinition struct {
	ID            string      `json:"id" validate:"required"`
	DisplayName   string      `json:"display_name"`
	Rarity        RarityClass `json:"rarity" validate:"gte=0,lte=5"`
	Category      string      `json:"category" validate:"required"`
	Toughness     float64     `json:"toughness" validate:"gte=0"`
	RequiredTools []string    `json:"required_tools,omitempty"`
	BaseWeight    float64     `json:"base_weight" validate:"gte=0"` // kilograms before rolls
	BaseGems      int         `json:"base_gems" validate:"gte=0"`
}

// AllowsTool reports whether the tool satisfies the item's tool requirement.
// An item without requirements can be dug with any tool.
func (i *ItemDefinition) AllowsTool(toolID string) bool {
	if len(i.RequiredTools) == 0 {
		return true
	}
	for _, t := range i.RequiredTools {
		if t == toolID {
			return true
		}
	}
	return false
}

// ItemFlags describe special properties of a chosen item for the client
type ItemFlags struct {
	FirstDiscovery bool `json:"first_discovery"`
	Mutated        bool `json:"mutated"`
	ShinySpot      bool `json:"shiny_spot"`
	PityForced     bool `json:"pity_forced"`
	Starter        bool `json:"starter"`
}
