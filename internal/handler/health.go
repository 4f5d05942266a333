package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/DigSite_Go/internal/database"
)

const readinessTimeout = 2 * time.Second

// Storage kinds reported by the readiness probe
const (
	StorageKindMemory   = "memory"
	StorageKindPostgres = "postgres"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the process is serving requests
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: MsgReadinessHealthy})
	}
}

// HandleReadyz reports whether dig progress can be persisted.
// A nil pool means in-memory storage, which is always ready.
// @Summary Readiness check
// @Description Returns OK when the progress store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbPool == nil {
			respondJSON(w, http.StatusOK, HealthResponse{Status: MsgReadinessHealthy, Storage: StorageKindMemory})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error(LogMsgReadinessCheck, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  MsgReadinessDegraded,
				Storage: StorageKindPostgres,
				Message: MsgDatabaseUnreachable,
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: MsgReadinessHealthy, Storage: StorageKindPostgres})
	}
}
