package player

// Log messages
const (
	LogMsgProfileUpserted   = "Player profile updated"
	LogMsgBuffsConsumed     = "Buffs consumed"
	LogMsgBuffActivated     = "Buff activated"
	LogMsgDiscoveryRecorded = "Discovery recorded"
	LogMsgGrantForUnknown   = "Inventory grant for unknown player"
)

// Log field keys
const (
	LogFieldPlayerID = "player_id"
	LogFieldBuffs    = "buffs"
	LogFieldBuffID   = "buff_id"
	LogFieldItemID   = "item_id"
	LogFieldCount    = "count"
)

// Error formats
const (
	ErrFmtBuffNotOwned   = "%w: buff %s not owned by %s"
	ErrFmtInvalidProfile = "%w: %v"
	ErrMsgDecodeGrant    = "failed to decode inventory grant: %w"
)
