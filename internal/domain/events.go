package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "dig.started")
const (
	// EventTypeDigItemChosen carries the chosen item to the acting player only
	EventTypeDigItemChosen = "dig.item_chosen"

	// EventTypeMinigameStarted hands the difficulty scalar to the minigame
	EventTypeMinigameStarted = "dig.minigame_started"

	// EventTypeDigCompleted is published when a dig finalizes, success or failure
	EventTypeDigCompleted = "dig.completed"

	// EventTypeDigAbandoned is published when a player leaves mid-dig
	EventTypeDigAbandoned = "dig.abandoned"

	// EventTypeMoundRaised / EventTypeMoundLowered follow the visual mound lifecycle
	EventTypeMoundRaised  = "dig.mound_raised"
	EventTypeMoundLowered = "dig.mound_lowered"

	// EventTypeRareFindAnnounced is the public announcement for high-rarity finds
	EventTypeRareFindAnnounced = "dig.rare_find_announced"

	// EventTypeStreakBonus is published when a dig streak grants bonus gems
	EventTypeStreakBonus = "dig.streak_bonus"

	// EventTypeInventoryGrant requests the inventory collaborator to grant an item
	EventTypeInventoryGrant = "inventory.grant_requested"

	// EventTypeCurrencyDelta requests a gem balance change
	EventTypeCurrencyDelta = "currency.delta_requested"

	// EventTypeExperienceDelta requests an xp change
	EventTypeExperienceDelta = "experience.delta_requested"

	// EventTypePityConsumed notifies the quest collaborator that pity fired
	EventTypePityConsumed = "quest.pity_consumed"

	// EventTypeQuestStateChanged is consumed to update a player's pity objective
	EventTypeQuestStateChanged = "quest.state_changed"
)

// Payloads

// DigItemChosenPayload wraps the private dig result
type DigItemChosenPayload struct {
	Recipient string    `json:"recipient"`
	Result    DigResult `json:"result"`
}

// MinigameStartedPayload is sent to the minigame collaborator
type MinigameStartedPayload struct {
	PlayerID   string           `json:"player_id"`
	SessionID  string           `json:"session_id"`
	ItemID     string           `json:"item_id"`
	Difficulty float64          `json:"difficulty"`
	Inputs     DifficultyInputs `json:"inputs"`
}

// DigCompletedPayload summarizes a finalized dig
type DigCompletedPayload struct {
	Outcome DigOutcome  `json:"outcome"`
	Rarity  RarityClass `json:"rarity"`
}

// DigAbandonedPayload is published when a pending dig is discarded
type DigAbandonedPayload struct {
	PlayerID string `json:"player_id"`
	ItemID   string `json:"item_id"`
	Reason   string `json:"reason"`
}

// MoundPayload follows the visual mound lifecycle
type MoundPayload struct {
	PlayerID  string   `json:"player_id"`
	SessionID string   `json:"session_id"`
	SlotID    int      `json:"slot_id"`
	Location  Position `json:"location"`
}

// RareFindPayload is the public announcement
type RareFindPayload struct {
	PlayerID    string      `json:"player_id"`
	ItemID      string      `json:"item_id"`
	DisplayName string      `json:"display_name"`
	Rarity      RarityClass `json:"rarity"`
	RarityName  string      `json:"rarity_name"`
	MutationID  string      `json:"mutation_id,omitempty"`
}

// StreakBonusPayload reports a streak bonus grant
type StreakBonusPayload struct {
	PlayerID string `json:"player_id"`
	Streak   int    `json:"streak"`
	Gems     int    `json:"gems"`
	Boosted  bool   `json:"boosted"`
}

// InventoryGrantPayload asks the inventory collaborator to add an item
type InventoryGrantPayload struct {
	PlayerID   string  `json:"player_id"`
	ItemID     string  `json:"item_id"`
	MutationID string  `json:"mutation_id,omitempty"`
	Weight     float64 `json:"weight"`
	Equip      bool    `json:"equip"`
}

// CurrencyDeltaPayload asks for a gem balance change
type CurrencyDeltaPayload struct {
	PlayerID string `json:"player_id"`
	Gems     int    `json:"gems"`
	Source   string `json:"source"`
}

// ExperienceDeltaPayload asks for an xp change
type ExperienceDeltaPayload struct {
	PlayerID string `json:"player_id"`
	XP       int    `json:"xp"`
	Source   string `json:"source"`
}

// PityConsumedPayload notifies that pity forced a drop
type PityConsumedPayload struct {
	PlayerID  string        `json:"player_id"`
	ItemID    string        `json:"item_id"`
	Objective PityObjective `json:"objective"`
}

// QuestStateChangedPayload updates the pity objective of a player
type QuestStateChangedPayload struct {
	PlayerID  string        `json:"player_id"`
	Objective PityObjective `json:"objective"`
}
