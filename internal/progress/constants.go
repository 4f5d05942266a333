package progress

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgLoadProgressFailed      = "failed to load dig progress: %w"
	ErrMsgSaveProgressFailed      = "failed to save dig progress: %w"
	ErrMsgIncrementDiscoveryFail  = "failed to record discovery: %w"
	ErrMsgListDiscoveriesFailed   = "failed to list discoveries: %w"
	ErrMsgNegativeProgressCounter = "progress counters cannot be negative"
)
