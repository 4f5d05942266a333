package event

import "time"

// EventSchemaVersion is stamped on every event and dead-letter entry
const EventSchemaVersion = "1.0"

// Retry configuration
const (
	// RetryQueueBufferSize bounds events waiting for a retry
	RetryQueueBufferSize = 1000

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay = time.Minute
)

// DeadLetterFilePermissions is the mode for new dead-letter files
const DeadLetterFilePermissions = 0644

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"
)

// Error formats
const (
	ErrMsgHandlersFailed  = "%d handlers failed for event %s: %w"
	ErrMsgHandlerPanicked = "event handler panicked: %v"
	ErrMsgNilPayload      = "nil payload for %T"
)

// CalculateRetryDelay doubles baseDelay per attempt, starting at baseDelay
// for attempt 1, and never exceeds MaxRetryDelay.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := baseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= MaxRetryDelay {
			return MaxRetryDelay
		}
	}
	return min(d, MaxRetryDelay)
}
