package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// maxPooledBuffer keeps one oversized response from pinning memory in the pool
const maxPooledBuffer = 64 << 10

var bufferPool = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, so the error can only be logged
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped error
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", opName, "error", err)
	} else {
		log.Info(LogMsgServiceError, "operation", opName, "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."

	// Lookup messages
	ErrMsgPlayerNotFoundError = "Player not found"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgToolNotFoundError   = "Equipped tool is not known"
	ErrMsgBuffNotFoundError   = "You don't have that buff"

	// Dig messages
	ErrMsgDigInProgressError = "You are already digging"
	ErrMsgNoActiveDigError   = "You are not digging"
	ErrMsgItemMismatchError  = "That is not the item you are digging"
	ErrMsgInventoryFullError = "Inventory is full"
	ErrMsgShinyToolError     = "Your tool cannot dig this spot"
	ErrMsgShinyStarError     = "Your tool is not strong enough for this spot"
	ErrMsgNotEligibleError   = "You cannot dig here right now"
	ErrMsgNoMoundError       = "The dig site is busy. Try again shortly"
	ErrMsgNothingToFindError = "There is nothing to dig up here"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// The specific eligibility cause is checked before the ErrNotEligible wrapper.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrBuffNotFound):
		return http.StatusNotFound, ErrMsgBuffNotFoundError
	case errors.Is(err, domain.ErrDigInProgress):
		return http.StatusConflict, ErrMsgDigInProgressError
	case errors.Is(err, domain.ErrNoActiveDig):
		return http.StatusConflict, ErrMsgNoActiveDigError
	case errors.Is(err, domain.ErrItemMismatch):
		return http.StatusConflict, ErrMsgItemMismatchError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusUnprocessableEntity, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrShinyToolMismatch):
		return http.StatusUnprocessableEntity, ErrMsgShinyToolError
	case errors.Is(err, domain.ErrShinyStarTooLow):
		return http.StatusUnprocessableEntity, ErrMsgShinyStarError
	case errors.Is(err, domain.ErrToolNotFound):
		return http.StatusUnprocessableEntity, ErrMsgToolNotFoundError
	case errors.Is(err, domain.ErrNotEligible):
		return http.StatusUnprocessableEntity, ErrMsgNotEligibleError
	case errors.Is(err, domain.ErrNoMoundAvailable):
		return http.StatusServiceUnavailable, ErrMsgNoMoundError
	case errors.Is(err, domain.ErrEmptyCandidatePool), errors.Is(err, domain.ErrDegenerateWeights):
		return http.StatusInternalServerError, ErrMsgNothingToFindError
	}

	// Default to a generic message so internal details never leak
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
