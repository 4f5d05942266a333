package sequencer

// Log messages
const (
	LogMsgStaleCallback     = "Skipping scheduled callback for ended session"
	LogMsgCallbackDropped   = "Scheduled callback dropped, worker queue full"
	LogMsgCancelledCallback = "Cancelled pending callback"
	LogMsgShuttingDown      = "Shutting down sequencer"
	LogMsgShutdownComplete  = "Sequencer shutdown complete"
	LogMsgShutdownTimeout   = "Sequencer shutdown timeout"
)

// Log field keys
const (
	LogFieldPlayerID   = "player_id"
	LogFieldGeneration = "generation"
	LogFieldCallbackID = "callback_id"
)
