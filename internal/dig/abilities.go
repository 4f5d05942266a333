package dig

import "github.com/osse101/DigSite_Go/internal/domain"

// RollAbilities rolls each bonus ability of the tool independently.
// A tool without an ability of some kind never triggers it.
func RollAbilities(tool *domain.ToolDefinition, rnd func() float64) domain.ToolModifiers {
	var mods domain.ToolModifiers
	if tool == nil {
		return mods
	}

	if a, ok := tool.Ability(domain.AbilityWeightBonus); ok && rnd() < a.Chance {
		mods.WeightBonus, mods.WeightTriggered = a.Magnitude, true
	}
	if a, ok := tool.Ability(domain.AbilityXPBonus); ok && rnd() < a.Chance {
		mods.XPBonus, mods.XPTriggered = a.Magnitude, true
	}
	if a, ok := tool.Ability(domain.AbilityGemBonus); ok && rnd() < a.Chance {
		mods.GemBonus, mods.GemTriggered = a.Magnitude, true
	}
	if a, ok := tool.Ability(domain.AbilityStreakBonus); ok && rnd() < a.Chance {
		mods.StreakBonus, mods.StreakTriggered = a.Magnitude, true
	}
	return mods
}

// ToolCategoryBias returns the tool's category bias ability, if any
func ToolCategoryBias(tool *domain.ToolDefinition) CategoryBias {
	if tool == nil {
		return CategoryBias{}
	}
	a, ok := tool.Ability(domain.AbilityCategoryBias)
	if !ok || a.Category == "" {
		return CategoryBias{}
	}
	return CategoryBias{Category: a.Category, Percent: a.Magnitude}
}
