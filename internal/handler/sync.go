package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/syncrun"
)

// SyncHandler exposes the sync orchestrator
type SyncHandler struct {
	service syncrun.Service
}

// NewSyncHandler creates a SyncHandler
func NewSyncHandler(service syncrun.Service) *SyncHandler {
	return &SyncHandler{service: service}
}

// HandleTriggerSync runs a sync for one entity type, or both with "all"
// @Summary Trigger a sync run
// @Description Runs the reconciliation pipeline synchronously. A failed pipeline is reported on the returned run.
// @Tags sync
// @Produce json
// @Param entity path string true "drivers, vehicles or all"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sync/{entity} [post]
func (h *SyncHandler) HandleTriggerSync(w http.ResponseWriter, r *http.Request) {
	entity := domain.EntityType(chi.URLParam(r, "entity"))
	if !entity.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidEntity)
		return
	}

	log := logger.FromContext(r.Context())
	log.Info("Sync triggered", logger.AttrKeyEntity, entity)

	if entity == domain.EntityAll {
		result := h.service.SyncAll(r.Context(), domain.TriggerManual)
		msg := MsgSyncCompleted
		if result.DriversError != "" || result.VehiclesError != "" {
			msg = MsgSyncFailed
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: msg, Data: result})
		return
	}

	run, err := h.service.Run(r.Context(), entity, domain.TriggerManual)
	if err != nil {
		respondServiceError(w, r, OpTriggerSync, err)
		return
	}

	msg := MsgSyncCompleted
	if run.Status == domain.SyncStatusFailed {
		msg = MsgSyncFailed
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: msg, Data: run})
}

// HandleSyncStatus reports the last completed run per entity and any in-progress runs
// @Summary Sync status
// @Tags sync
// @Produce json
// @Success 200 {object} domain.SyncStatusReport
// @Router /api/v1/sync/status [get]
func (h *SyncHandler) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Status(r.Context())
	if err != nil {
		respondServiceError(w, r, OpSyncStatus, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleSyncHistory lists recent runs newest first
// @Summary Sync history
// @Tags sync
// @Produce json
// @Param entity query string false "drivers, vehicles or all"
// @Param limit query int false "default 20, max 100"
// @Success 200 {object} ListResponse[domain.SyncRun]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/sync/history [get]
func (h *SyncHandler) HandleSyncHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetIntQueryParam(r, w, "limit", syncrun.DefaultHistoryLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	entity := domain.EntityType(GetOptionalQueryParam(r, "entity", string(domain.EntityAll)))

	runs, err := h.service.History(r.Context(), entity, limit)
	if err != nil {
		respondServiceError(w, r, OpSyncHistory, err)
		return
	}
	respondJSON(w, http.StatusOK, newList(runs))
}

// HandleGetRun returns one run of the ledger
// @Summary Get a sync run
// @Tags sync
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} domain.SyncRun
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sync/runs/{id} [get]
func (h *SyncHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, OpGetRun, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}
