package handler

import (
	"net/http"

	"github.com/osse101/FleetSync_Go/internal/eventlog"
)

// EventHandler serves the sync activity log
type EventHandler struct {
	service eventlog.Service
}

// NewEventHandler creates an EventHandler
func NewEventHandler(service eventlog.Service) *EventHandler {
	return &EventHandler{service: service}
}

// HandleListEvents lists logged sync events newest first
// @Summary Sync activity log
// @Tags events
// @Produce json
// @Param type query string false "event type, e.g. sync.run.finished"
// @Param run_id query string false "sync run id"
// @Param limit query int false "default 50, max 500"
// @Success 200 {object} ListResponse[eventlog.Entry]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/events [get]
func (h *EventHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetIntQueryParam(r, w, "limit", eventlog.DefaultListLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}

	entries, err := h.service.List(r.Context(), eventlog.Filter{
		EventType: r.URL.Query().Get("type"),
		RunID:     r.URL.Query().Get("run_id"),
		Limit:     limit,
	})
	if err != nil {
		respondServiceError(w, r, OpListEvents, err)
		return
	}
	respondJSON(w, http.StatusOK, newList(entries))
}
