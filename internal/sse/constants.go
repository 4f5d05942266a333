package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the hub's inbound queue
	BroadcastBufferSize = 256

	// ClientEventBuffer is each stream's outbound queue
	ClientEventBuffer = 64
)

// KeepaliveInterval keeps idle streams open through proxies
const KeepaliveInterval = 30 * time.Second

// Stream control event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters accepted by the stream endpoint
const (
	QueryParamTypes    = "types"
	QueryParamPlayerID = "player_id"
)

// Drop reasons for the dropped-events counter
const (
	DropReasonQueueFull  = "queue_full"
	DropReasonSlowClient = "slow_client"
)

// Client-facing errors
const (
	ErrMsgStreamingUnsupported = "streaming unsupported"
	ErrMsgShuttingDown         = "server shutting down"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Forwarding event to SSE hub"
	LogMsgEventDropped       = "SSE queue full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)
