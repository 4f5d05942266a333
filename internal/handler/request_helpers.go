package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/DigSite_Go/internal/logger"
)

// ValidationErrorResponse lists the rejected fields of a request body
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON body into req and runs struct
// validation. On failure the response has been written and the caller returns.
//
//	var req StartDigRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Start dig"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn(LogMsgBodyTooLarge, "action", actionName, "limit", tooLarge.Limit)
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
			return err
		}
		log.Info(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		fields := FormatValidationError(err)
		log.Debug(LogMsgValidationFailed, "action", actionName, "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return err
	}
	return nil
}

// playerIDParam reads the player_id query parameter and checks it the same
// way request bodies are checked. On failure the response has been written.
func playerIDParam(r *http.Request, w http.ResponseWriter) (string, bool) {
	playerID := r.URL.Query().Get(QueryParamPlayerID)
	if playerID == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, QueryParamPlayerID))
		return "", false
	}
	if err := GetValidator().ValidateVar(playerID, "playerid"); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return "", false
	}
	return playerID, true
}

// handleAction decodes a request, calls one service operation and responds
// with its result.
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	status int,
	action func(context.Context, REQ) (RES, error),
) {
	var req REQ
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, status, res)
}
