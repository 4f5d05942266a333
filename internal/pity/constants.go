package pity

// DefaultThreshold is the number of unsuccessful digs after which pity saturates
const DefaultThreshold = 30

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgGetPityFailed       = "failed to get pity: %w"
	ErrMsgIncrementPityFailed = "failed to increment pity: %w"
	ErrMsgResetPityFailed     = "failed to reset pity: %w"
	ErrMsgSetObjectiveFailed  = "failed to set pity objective: %w"
	ErrMsgDecodeQuestEvent    = "failed to decode quest state event: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgPityConsumed     = "Pity consumed"
	LogMsgPityReset        = "Pity objective satisfied, counter reset"
	LogMsgObjectiveUpdated = "Pity objective updated"
	LogMsgCounterAdvanced  = "Pity counter advanced"
)

// Log field keys
const (
	LogFieldPlayerID = "player_id"
	LogFieldCounter  = "counter"
	LogFieldItemID   = "item_id"
	LogFieldCategory = "category"
)
