package handler

// Request errors returned to clients. Internal error text is never echoed.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgBodyTooLarge          = "Request body too large"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// QueryParamPlayerID names the player on GET endpoints
const QueryParamPlayerID = "player_id"

// Success messages for API responses
const (
	MsgProgressRecorded  = "Progress recorded"
	MsgPlayerExited      = "Player exited"
	MsgShinySpotLeft     = "Left shiny spot"
	MsgPlayerSaved       = "Player saved"
	MsgBuffActivated     = "Buff activated"
	MsgObjectiveUpdated  = "Pity objective updated"
	MsgSessionsReaped    = "Expired sessions reaped"
	MsgReadinessHealthy  = "ok"
	MsgReadinessDegraded = "unavailable"

	MsgDatabaseUnreachable = "database connection failed"
)

// Log messages
const (
	LogMsgServiceError   = "Service call failed"
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgReadinessCheck = "Readiness check failed"

	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgBodyTooLarge     = "Request body over limit"
	LogMsgValidationFailed = "Request failed validation"
)
