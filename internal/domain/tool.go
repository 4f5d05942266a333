package domain

// AbilityKind names what a tool ability modifies
type AbilityKind string

const (
	AbilityWeightBonus  AbilityKind = "weight_bonus"
	AbilityXPBonus      AbilityKind = "xp_bonus"
	AbilityGemBonus     AbilityKind = "gem_bonus"
	AbilityStreakBonus  AbilityKind = "streak_bonus"
	AbilityCategoryBias AbilityKind = "category_bias"
)

// ToolAbility is a passive ability carried by a tool.
// Chance gates whether it triggers on a dig; Magnitude is the bonus fraction
// (0.25 = +25%) or, for category bias, the bias fraction in [0,1].
type ToolAbility struct {
	Kind      AbilityKind `json:"kind" validate:"required,oneof=weight_bonus xp_bonus gem_bonus streak_bonus category_bias"`
	Chance    float64     `json:"chance" validate:"gte=0,lte=1"`
	Magnitude float64     `json:"magnitude"`
	Category  string      `json:"category,omitempty"`
}

// ToolDefinition is a diggable tool with a star level and abilities
type ToolDefinition struct {
	ID        string        `json:"id" validate:"required"`
	Star      int           `json:"star" validate:"gte=0"`
	Abilities []ToolAbility `json:"abilities,omitempty" validate:"dive"`
}

// Ability returns the first ability of the given kind
func (t *ToolDefinition) Ability(kind AbilityKind) (ToolAbility, bool) {
	for _, a := range t.Abilities {
		if a.Kind == kind {
			return a, true
		}
	}
	return ToolAbility{}, false
}

// BuffDefinition is a consumable dig buff.
// RarityPercent adds total*pct[i] to rarity bucket i while active.
// CategoryMultiplier scales the selection weight of items in Category.
type BuffDefinition struct {
	ID                 string    `json:"id" validate:"required"`
	LuckBonus          float64   `json:"luck_bonus" validate:"gte=0"`
	RarityPercent      []float64 `json:"rarity_percent,omitempty" validate:"omitempty,len=6"`
	Category           string    `json:"category,omitempty"`
	CategoryMultiplier float64   `json:"category_multiplier,omitempty" validate:"gte=0"`
}

// ToolModifiers is the outcome of the per-dig ability trigger rolls
type ToolModifiers struct {
	WeightBonus     float64 `json:"weight_bonus"`
	XPBonus         float64 `json:"xp_bonus"`
	GemBonus        float64 `json:"gem_bonus"`
	StreakBonus     float64 `json:"streak_bonus"`
	WeightTriggered bool    `json:"weight_triggered"`
	XPTriggered     bool    `json:"xp_triggered"`
	GemTriggered    bool    `json:"gem_triggered"`
	StreakTriggered bool    `json:"streak_triggered"`
}
