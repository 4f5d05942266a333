package dig

// Log messages
const (
	LogMsgOverridesIgnored   = "Debug overrides ignored, not enabled"
	LogMsgOverridesApplied   = "Debug overrides applied"
	LogMsgPityUnreachable    = "Pity objective not reachable from pool"
	LogMsgShinyTargetGated   = "Shiny spot target cannot be dug with tool"
	LogMsgShinyTargetMissing = "Shiny spot target missing from catalog"
	LogMsgStarterMissing     = "Starter item unavailable, using normal resolution"
	LogMsgBuffMissing        = "Active buff missing from catalog"
	LogMsgPityUniform        = "Pity pool has no weight, drawing uniformly"
	LogMsgResolved           = "Dig resolved"
)

// Log field keys
const (
	LogFieldPlayerID   = "player_id"
	LogFieldItemID     = "item_id"
	LogFieldToolID     = "tool_id"
	LogFieldSpotID     = "spot_id"
	LogFieldBuffID     = "buff_id"
	LogFieldCategory   = "category"
	LogFieldRarity     = "rarity"
	LogFieldMutationID = "mutation_id"
	LogFieldLuck       = "luck"
)

// Error context
const (
	ErrContextResolveFailed = "dig resolution failed"
)
