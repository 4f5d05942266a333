package handler

import (
	"context"
	"net/http"

	"github.com/osse101/DigSite_Go/internal/domain"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// PlayerStore accepts player profile updates from the equipment collaborator
type PlayerStore interface {
	Upsert(ctx context.Context, p domain.PlayerProfile) error
}

// ObjectiveSetter updates a player's pity objective
type ObjectiveSetter interface {
	SetObjective(ctx context.Context, playerID string, objective domain.PityObjective) error
}

// SessionReaper abandons digs whose minigame never reported back
type SessionReaper interface {
	ReapExpired(ctx context.Context) (int, error)
}

// AdminHandler serves collaborator and operator endpoints
type AdminHandler struct {
	players    PlayerStore
	objectives ObjectiveSetter
	reaper     SessionReaper
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(players PlayerStore, objectives ObjectiveSetter, reaper SessionReaper) *AdminHandler {
	return &AdminHandler{players: players, objectives: objectives, reaper: reaper}
}

// QuestObjectiveRequest sets the item or category pity guarantees
type QuestObjectiveRequest struct {
	PlayerID  string               `json:"player_id" validate:"playerid"`
	Objective domain.PityObjective `json:"objective"`
}

// ReapResponse reports how many sessions were abandoned
type ReapResponse struct {
	Message string `json:"message"`
	Reaped  int    `json:"reaped"`
}

// HandleUpsertPlayer stores a player profile
// @Summary Upsert player
// @Description Sets the equipped tool, zone, free inventory and buffs of a player
// @Tags admin
// @Accept json
// @Produce json
// @Param request body domain.PlayerProfile true "Profile"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/player [post]
func (h *AdminHandler) HandleUpsertPlayer(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Upsert player", http.StatusOK, func(ctx context.Context, req domain.PlayerProfile) (SuccessResponse, error) {
		if err := h.players.Upsert(ctx, req); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgPlayerSaved}, nil
	})
}

// HandleSetObjective updates a player's pity objective
// @Summary Set pity objective
// @Description An empty objective turns pity off for the player
// @Tags admin
// @Accept json
// @Produce json
// @Param request body QuestObjectiveRequest true "Objective"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/quest [post]
func (h *AdminHandler) HandleSetObjective(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Set objective", http.StatusOK, func(ctx context.Context, req QuestObjectiveRequest) (SuccessResponse, error) {
		if err := h.objectives.SetObjective(ctx, req.PlayerID, req.Objective); err != nil {
			return SuccessResponse{}, err
		}
		return SuccessResponse{Message: MsgObjectiveUpdated}, nil
	})
}

// HandleReap abandons expired digs immediately
// @Summary Reap expired digs
// @Tags admin
// @Produce json
// @Success 200 {object} ReapResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/reap [post]
func (h *AdminHandler) HandleReap(w http.ResponseWriter, r *http.Request) {
	n, err := h.reaper.ReapExpired(r.Context())
	if err != nil {
		respondServiceError(w, r, "Reap sessions", err)
		return
	}
	logger.FromContext(r.Context()).Info(MsgSessionsReaped, "count", n)
	respondJSON(w, http.StatusOK, ReapResponse{Message: MsgSessionsReaped, Reaped: n})
}
