package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/logger"
)

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

// ListResponse wraps a collection with its size
type ListResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

func newList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Count: len(items), Items: items}
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgAuthFailedError    = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequests    = "Too many requests. Please try again later."

	ErrMsgDriverNotFoundError   = "Driver not found"
	ErrMsgVehicleNotFoundError  = "Vehicle not found"
	ErrMsgSyncRunNotFoundError  = "Sync run not found"
	ErrMsgSyncInProgressError   = "A sync of this entity is already running"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
	ErrMsgInvalidEntityError    = ErrMsgInvalidEntity
	ErrMsgDuplicateRecordError  = "A record with that key already exists"
	ErrMsgRunFinishedError      = "Sync run already finished"
	ErrMsgUpstreamUnavailable   = "Upstream source is unavailable"
	ErrMsgUpstreamAuthFailedErr = "Upstream source rejected our credentials"
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a message
// safe to show to API clients. errors.Is walks wrapped chains.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrDriverNotFound):
		return http.StatusNotFound, ErrMsgDriverNotFoundError
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, ErrMsgVehicleNotFoundError
	case errors.Is(err, domain.ErrSyncRunNotFound):
		return http.StatusNotFound, ErrMsgSyncRunNotFoundError
	case errors.Is(err, domain.ErrSyncInProgress):
		return http.StatusConflict, ErrMsgSyncInProgressError
	case errors.Is(err, domain.ErrDuplicateRecord):
		return http.StatusConflict, ErrMsgDuplicateRecordError
	case errors.Is(err, domain.ErrRunAlreadyFinished):
		return http.StatusConflict, ErrMsgRunFinishedError
	case errors.Is(err, domain.ErrInvalidEntityType):
		return http.StatusBadRequest, ErrMsgInvalidEntityError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUpstreamAuth):
		return http.StatusBadGateway, ErrMsgUpstreamAuthFailedErr
	case errors.Is(err, domain.ErrModuleUnavailable):
		return http.StatusBadGateway, ErrMsgUpstreamUnavailable
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped response.
// Client errors are logged at warn, everything else at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" "+OpRequestFailed, "error", err, "status", status)
	} else {
		log.Warn(opName+" "+OpRequestFailed, "error", err, "status", status)
	}
	respondError(w, status, msg)
}
