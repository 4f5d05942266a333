package handler

import (
	"context"
	"net/http"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
	"github.com/osse101/DigSite_Go/internal/session"
)

// BuffActivator moves an owned buff into the active set
type BuffActivator interface {
	ActivateBuff(ctx context.Context, playerID, buffID string) error
}

// DigHandler serves the player-facing dig endpoints
type DigHandler struct {
	sessions session.Service
	buffs    BuffActivator
}

// NewDigHandler creates a DigHandler
func NewDigHandler(sessions session.Service, buffs BuffActivator) *DigHandler {
	return &DigHandler{sessions: sessions, buffs: buffs}
}

// PlayerRequest identifies the acting player
type PlayerRequest struct {
	PlayerID string `json:"player_id" validate:"playerid"`
}

// CanDigRequest asks whether the player may dig at a position
type CanDigRequest struct {
	PlayerID string          `json:"player_id" validate:"playerid"`
	Position domain.Position `json:"position"`
}

// StartDigRequest starts a dig. Overrides are honored only when the server allows them.
type StartDigRequest struct {
	PlayerID  string                 `json:"player_id" validate:"playerid"`
	Position  domain.Position        `json:"position"`
	Luck      float64                `json:"luck" validate:"finite,gte=0"`
	Overrides *domain.DebugOverrides `json:"overrides,omitempty"`
}

// ProgressRequest reports minigame progress
type ProgressRequest struct {
	PlayerID string  `json:"player_id" validate:"playerid"`
	ItemID   string  `json:"item_id" validate:"required"`
	Progress float64 `json:"progress" validate:"finite,gte=0,lte=1"`
}

// CompleteRequest finalizes the active dig
type CompleteRequest struct {
	PlayerID string `json:"player_id" validate:"playerid"`
	ItemID   string `json:"item_id" validate:"required"`
	Success  bool   `json:"success"`
}

// ActivateBuffRequest activates an owned buff for the next dig
type ActivateBuffRequest struct {
	PlayerID string `json:"player_id" validate:"playerid"`
	BuffID   string `json:"buff_id" validate:"required"`
}

// HandleCanDig checks dig eligibility
// @Summary Check dig eligibility
// @Description Runs inventory and shiny spot gating for a position and suggests a luck buff
// @Tags dig
// @Accept json
// @Produce json
// @Param request body CanDigRequest true "Player and position"
// @Success 200 {object} domain.CanDigResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Player not found"
// @Router /dig/can-dig [post]
func (h *DigHandler) HandleCanDig(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Can dig", http.StatusOK, func(ctx context.Context, req CanDigRequest) (*domain.CanDigResult, error) {
		return h.sessions.QueryCanDig(ctx, req.PlayerID, req.Position)
	})
}

// HandleStartDig resolves a dig and opens the player's session
// @Summary Start a dig
// @Description Resolves the dug item, reserves a mound and hands the difficulty to the minigame
// @Tags dig
// @Accept json
// @Produce json
// @Param request body StartDigRequest true "Dig start"
// @Success 201 {object} domain.DigResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Dig already in progress"
// @Failure 422 {object} ErrorResponse "Not eligible"
// @Failure 503 {object} ErrorResponse "No mound available"
// @Router /dig/start [post]
func (h *DigHandler) HandleStartDig(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Start dig", http.StatusCreated, func(ctx context.Context, req StartDigRequest) (*domain.DigResult, error) {
		start := session.StartRequest{
			PlayerID: req.PlayerID,
			Position: req.Position,
			Luck:     req.Luck,
		}
		if req.Overrides != nil {
			start.Overrides = *req.Overrides
		}
		return h.sessions.StartDig(ctx, start)
	})
}

// HandleProgress records minigame progress
// @Summary Report minigame progress
// @Tags dig
// @Accept json
// @Produce json
// @Param request body ProgressRequest true "Progress"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No active dig or item mismatch"
// @Router /dig/progress [post]
func (h *DigHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Report progress", http.StatusOK, func(ctx context.Context, req ProgressRequest) (SuccessResponse, error) {
		if err := h.sessions.ReportProgress(ctx, req.PlayerID, req.Progress, req.ItemID); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgProgressRecorded}, nil
	})
}

// HandleComplete finalizes the active dig
// @Summary Complete a dig
// @Description Grants rewards on success and updates the streak either way
// @Tags dig
// @Accept json
// @Produce json
// @Param request body CompleteRequest true "Minigame result"
// @Success 200 {object} domain.DigOutcome
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No active dig or item mismatch"
// @Router /dig/complete [post]
func (h *DigHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Complete dig", http.StatusOK, func(ctx context.Context, req CompleteRequest) (*domain.DigOutcome, error) {
		return h.sessions.ReportComplete(ctx, req.PlayerID, req.Success, req.ItemID)
	})
}

// HandleExit tears down the player's dig state
// @Summary Player exit
// @Description Abandons any pending dig without reward and frees its mound
// @Tags dig
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /dig/exit [post]
func (h *DigHandler) HandleExit(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Player exit", http.StatusOK, func(ctx context.Context, req PlayerRequest) (SuccessResponse, error) {
		if err := h.sessions.PlayerExit(ctx, req.PlayerID); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgPlayerExited}, nil
	})
}

// HandleLeaveSpot clears the player's shiny spot binding
// @Summary Leave shiny spot
// @Tags dig
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /dig/leave-spot [post]
func (h *DigHandler) HandleLeaveSpot(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Leave shiny spot", http.StatusOK, func(ctx context.Context, req PlayerRequest) (SuccessResponse, error) {
		if err := h.sessions.LeaveShinySpot(ctx, req.PlayerID); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgShinySpotLeft}, nil
	})
}

// HandleActivateBuff activates an owned buff
// @Summary Activate buff
// @Description Moves an owned buff into the active set; it is consumed by the next successful dig that uses it
// @Tags dig
// @Accept json
// @Produce json
// @Param request body ActivateBuffRequest true "Buff"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Player or buff not found"
// @Router /dig/activate-buff [post]
func (h *DigHandler) HandleActivateBuff(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Activate buff", http.StatusOK, func(ctx context.Context, req ActivateBuffRequest) (SuccessResponse, error) {
		if err := h.buffs.ActivateBuff(ctx, req.PlayerID, req.BuffID); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgBuffActivated}, nil
	})
}

// HandleState returns the player's dig state
// @Summary Dig state
// @Tags dig
// @Produce json
// @Param player_id query string true "Player id"
// @Success 200 {object} session.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /dig/state [get]
func (h *DigHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDParam(r, w)
	if !ok {
		return
	}
	ctx := logger.WithPlayerID(r.Context(), playerID)
	logger.FromContext(ctx).Debug("Dig state requested")

	snap, err := h.sessions.State(ctx, playerID)
	if err != nil {
		respondServiceError(w, r, "Dig state", err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
