package domain

import (
	"time"

	"github.com/google/uuid"
)

// DigState is a player's position in the dig lifecycle
type DigState string

const (
	DigStateIdle             DigState = "idle"
	DigStateEligible         DigState = "eligible"
	DigStateResolving        DigState = "resolving"
	DigStateAwaitingMinigame DigState = "awaiting_minigame"
	DigStateCompleted        DigState = "completed"
)

// Reasons a dig can be refused during eligibility checks
const (
	CanDigReasonInventoryFull  = "inventory_full"
	CanDigReasonShinyWrongTool = "shiny_spot_wrong_tool"
	CanDigReasonShinyStarLow   = "shiny_spot_star_too_low"
	CanDigReasonDigInProgress  = "dig_in_progress"
	CanDigReasonUnknownTool    = "unknown_tool"
)

// DebugOverrides bypass the resolution filters. They are honored only when
// the engine is configured to allow them. A nil ForcedRarity means none.
type DebugOverrides struct {
	ForcedRarity   *RarityClass `json:"forced_rarity,omitempty"`
	ForcedMutation string       `json:"forced_mutation,omitempty"`
	ForcedItemID   string       `json:"forced_item_id,omitempty"`
}

// ForceRarity returns overrides forcing rarity r
func ForceRarity(r RarityClass) DebugOverrides {
	return DebugOverrides{ForcedRarity: &r}
}

// Rarity returns the forced rarity or NoForcedRarity
func (d DebugOverrides) Rarity() RarityClass {
	if d.ForcedRarity == nil || !d.ForcedRarity.Valid() {
		return NoForcedRarity
	}
	return *d.ForcedRarity
}

// IsZero reports whether no override is requested
func (d DebugOverrides) IsZero() bool {
	return !d.Rarity().Valid() && d.ForcedMutation == "" && d.ForcedItemID == ""
}

// DifficultyInputs are the values the minigame difficulty scalar is derived from
type DifficultyInputs struct {
	Toughness float64     `json:"toughness"`
	ToolStar  int         `json:"tool_star"`
	ZoneLevel int         `json:"zone_level"`
	Rarity    RarityClass `json:"rarity"`
}

// DigSessionRecord is the pending result of one dig, owned by the session service.
// Exactly one may exist per player.
type DigSessionRecord struct {
	SessionID             uuid.UUID
	PlayerID              string
	Item                  *ItemDefinition
	Location              Position
	Modifiers             ToolModifiers
	DiscoverCount         int
	GemReward             int
	XPReward              int
	Weight                float64
	MutationID            string
	MutationStreakCounter int
	PityForced            bool
	ShinyHit              bool
	UsedBuffs             []string
	Difficulty            float64
	DifficultyInputs      DifficultyInputs
	Progress              float64
	Generation            uint64
	SlotID                int
	StartedAt             time.Time
}

// CanDigResult answers a "can I dig" query
type CanDigResult struct {
	CanDig          bool    `json:"can_dig"`
	Reason          string  `json:"reason,omitempty"`
	SuggestedBuffID string  `json:"suggested_buff_id,omitempty"`
	ShinySpotID     string  `json:"shiny_spot_id,omitempty"`
	StarRequirement int     `json:"star_requirement"`
	BaseChance      float64 `json:"base_chance"`
}

// DigResult is the chosen-item payload sent only to the acting player
type DigResult struct {
	SessionID        uuid.UUID        `json:"session_id"`
	PlayerID         string           `json:"player_id"`
	ItemID           string           `json:"item_id"`
	Rarity           RarityClass      `json:"rarity"`
	Location         Position         `json:"location"`
	Weight           float64          `json:"weight"`
	WeightBonus      float64          `json:"weight_bonus"`
	XP               int              `json:"xp"`
	XPBonus          float64          `json:"xp_bonus"`
	Gems             int              `json:"gems"`
	GemBonus         float64          `json:"gem_bonus"`
	MutationID       string           `json:"mutation_id"`
	ItemFlags        ItemFlags        `json:"item_flags"`
	DiscoverCount    int              `json:"discover_count"`
	Difficulty       float64          `json:"difficulty"`
	DifficultyInputs DifficultyInputs `json:"difficulty_inputs"`
}

// DigOutcome is the result of finalizing a dig
type DigOutcome struct {
	PlayerID        string `json:"player_id"`
	ItemID          string `json:"item_id"`
	Success         bool   `json:"success"`
	GemsAwarded     int    `json:"gems_awarded"`
	XPAwarded       int    `json:"xp_awarded"`
	Streak          int    `json:"streak"`
	StreakBonusGems int    `json:"streak_bonus_gems"`
	Announced       bool   `json:"announced"`
	PityConsumed    bool   `json:"pity_consumed"`
}

// DigProgress is the persisted per-player counters that outlive a session
type DigProgress struct {
	PlayerID          string `json:"player_id"`
	Streak            int    `json:"streak"`
	LifetimeDigs      int    `json:"lifetime_digs"`
	DigsSinceMutation int    `json:"digs_since_mutation"`
}
