package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/FleetSync_Go/internal/database"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

const (
	healthOK          = "ok"
	healthUnavailable = "unavailable"
	checkDatabase     = "database"
)

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: healthOK})
	}
}

// HandleReadyz provides a readiness check that validates database connectivity
// @Summary Readiness check
// @Description Returns OK if the service is ready to accept traffic (database connected)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error("Readiness check failed", "check", checkDatabase, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  healthUnavailable,
				Message: "database connection failed",
				Checks:  map[string]string{checkDatabase: healthUnavailable},
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{
			Status: healthOK,
			Checks: map[string]string{checkDatabase: healthOK},
		})
	}
}
