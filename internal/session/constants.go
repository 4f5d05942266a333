package session

import "time"

// Defaults applied when the tuning file leaves a value unset
const (
	DefaultAnnounceThreshold = 3
	DefaultStreakBonusEvery  = 10
	DefaultStreakBonusGems   = 5
	DefaultMoundRiseDelay    = 1500 * time.Millisecond
	DefaultMoundLowerDelay   = 3 * time.Second
	DefaultSessionTimeout    = 5 * time.Minute
)

// Currency and xp delta sources
const (
	SourceDig       = "dig"
	SourceDigStreak = "dig_streak"
)

// Abandon reasons
const (
	AbandonReasonExit    = "player_exit"
	AbandonReasonTimeout = "timeout"
)

// Resolution failure metric reasons
const (
	FailureReasonNoMound     = "no_mound"
	FailureReasonEmptyPool   = "empty_pool"
	FailureReasonDegenerate  = "degenerate_weights"
	FailureReasonNotEligible = "not_eligible"
	FailureReasonInvalid     = "invalid_input"
	FailureReasonOther       = "other"
)

// Log messages
const (
	LogMsgEligibilityChecked = "Dig eligibility checked"
	LogMsgDigStarted         = "Dig started"
	LogMsgDigRejected        = "Dig start rejected"
	LogMsgNoMound            = "No mound slot available, dig aborted"
	LogMsgResolveFailed      = "Dig resolution failed"
	LogMsgDigCompleted       = "Dig completed"
	LogMsgDigAbandoned       = "Dig abandoned"
	LogMsgBuffConsumeFailed  = "Failed to consume buffs"
	LogMsgPityRecordFailed   = "Failed to record pity"
	LogMsgPityStateFailed    = "Failed to read pity state"
	LogMsgProgressSaveFailed = "Failed to save dig progress"
	LogMsgShinyBindingClear  = "Shiny spot binding cleared"
	LogMsgSessionsReaped     = "Expired dig sessions reaped"
	LogMsgIdleStatesEvicted  = "Idle dig states evicted"
	LogMsgShuttingDown       = "Shutting down dig sessions"
)

// Log field keys
const (
	LogFieldPlayerID   = "player_id"
	LogFieldSessionID  = "session_id"
	LogFieldItemID     = "item_id"
	LogFieldRarity     = "rarity"
	LogFieldReason     = "reason"
	LogFieldSlotID     = "slot_id"
	LogFieldSuccess    = "success"
	LogFieldStreak     = "streak"
	LogFieldGeneration = "generation"
	LogFieldCount      = "count"
	LogFieldError      = "error"
	LogFieldSpotID     = "spot_id"
	LogFieldCanDig     = "can_dig"
)

// Error formats
const (
	ErrFmtNotEligible  = "%w: %w"
	ErrFmtItemMismatch = "%w: expected %s, got %s"
	ErrMsgMissingDep   = "session dependency missing"
)
