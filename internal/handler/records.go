package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/lookup"
)

// RecordService reads and edits cached driver and vehicle records
type RecordService interface {
	Driver(ctx context.Context, id string) (*domain.DriverCacheRecord, error)
	Drivers(ctx context.Context, filter domain.DriverFilter) ([]domain.DriverCacheRecord, error)
	PatchDriver(ctx context.Context, id string, patch domain.DriverManualPatch) (*domain.DriverCacheRecord, error)
	Vehicle(ctx context.Context, id string) (*domain.VehicleCacheRecord, error)
	Vehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleCacheRecord, error)
	PatchVehicle(ctx context.Context, id string, patch domain.VehicleManualPatch) (*domain.VehicleCacheRecord, error)
	Stats() map[domain.EntityType]lookup.Stats
}

var _ RecordService = (*lookup.Service)(nil)

// RecordHandler serves the driver and vehicle caches
type RecordHandler struct {
	service RecordService
}

// NewRecordHandler creates a RecordHandler
func NewRecordHandler(service RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// paging reads limit and offset, writing a 400 on malformed values
func paging(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	if limit, ok = GetIntQueryParam(r, w, "limit", 0, ErrMsgInvalidLimit); !ok {
		return 0, 0, false
	}
	if offset, ok = GetIntQueryParam(r, w, "offset", 0, ErrMsgInvalidOffset); !ok {
		return 0, 0, false
	}
	return limit, offset, true
}

// HandleListDrivers lists cached drivers
// @Summary List drivers
// @Tags drivers
// @Produce json
// @Param status query string false "disponible, indisponible or occupe"
// @Param team_id query int false "HR team id"
// @Param q query string false "name, email or matricule search"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} ListResponse[domain.DriverCacheRecord]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/drivers [get]
func (h *RecordHandler) HandleListDrivers(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paging(w, r)
	if !ok {
		return
	}
	filter := domain.DriverFilter{
		Status: domain.DriverStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidStatus)
		return
	}
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		team, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidTeamID)
			return
		}
		filter.TeamID = &team
	}

	drivers, err := h.service.Drivers(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, OpListDrivers, err)
		return
	}
	respondJSON(w, http.StatusOK, newList(drivers))
}

// HandleGetDriver returns one cached driver
// @Summary Get a driver
// @Tags drivers
// @Produce json
// @Param id path string true "driver cache id"
// @Success 200 {object} domain.DriverCacheRecord
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/drivers/{id} [get]
func (h *RecordHandler) HandleGetDriver(w http.ResponseWriter, r *http.Request) {
	driver, err := h.service.Driver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, OpGetDriver, err)
		return
	}
	respondJSON(w, http.StatusOK, driver)
}

// HandlePatchDriver edits the operator-owned fields of a driver
// @Summary Edit driver manual fields
// @Description Only matricule, permits, certifications, agency, zone, status and indisponibilite_raison are writable.
// @Tags drivers
// @Accept json
// @Produce json
// @Param id path string true "driver cache id"
// @Param patch body domain.DriverManualPatch true "fields to change"
// @Success 200 {object} domain.DriverCacheRecord
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/drivers/{id} [patch]
func (h *RecordHandler) HandlePatchDriver(w http.ResponseWriter, r *http.Request) {
	var patch domain.DriverManualPatch
	if err := DecodeAndValidateRequest(r, w, &patch, OpPatchDriver); err != nil {
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, ErrMsgEmptyPatch)
		return
	}

	driver, err := h.service.PatchDriver(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondServiceError(w, r, OpPatchDriver, err)
		return
	}
	respondJSON(w, http.StatusOK, driver)
}

// HandleListVehicles lists cached vehicles
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Param source query string false "myrentcar or wincpl"
// @Param status query string false "disponible, en_service, maintenance or hors_service"
// @Param q query string false "plate, code, brand or model search"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} ListResponse[domain.VehicleCacheRecord]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/vehicles [get]
func (h *RecordHandler) HandleListVehicles(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paging(w, r)
	if !ok {
		return
	}
	filter := domain.VehicleFilter{
		DataSource: domain.DataSource(r.URL.Query().Get("source")),
		Status:     domain.VehicleStatus(r.URL.Query().Get("status")),
		Search:     r.URL.Query().Get("q"),
		Limit:      limit,
		Offset:     offset,
	}
	switch filter.DataSource {
	case "", domain.DataSourceMyRentCar, domain.DataSourceWincpl:
	default:
		respondError(w, http.StatusBadRequest, ErrMsgInvalidDataSource)
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidStatus)
		return
	}

	vehicles, err := h.service.Vehicles(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, OpListVehicles, err)
		return
	}
	respondJSON(w, http.StatusOK, newList(vehicles))
}

// HandleGetVehicle returns one cached vehicle
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "vehicle cache id"
// @Success 200 {object} domain.VehicleCacheRecord
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/vehicles/{id} [get]
func (h *RecordHandler) HandleGetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.service.Vehicle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, OpGetVehicle, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// HandlePatchVehicle edits the operator-owned fields of a vehicle
// @Summary Edit vehicle manual fields
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "vehicle cache id"
// @Param patch body domain.VehicleManualPatch true "fields to change"
// @Success 200 {object} domain.VehicleCacheRecord
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/vehicles/{id} [patch]
func (h *RecordHandler) HandlePatchVehicle(w http.ResponseWriter, r *http.Request) {
	var patch domain.VehicleManualPatch
	if err := DecodeAndValidateRequest(r, w, &patch, OpPatchVehicle); err != nil {
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, ErrMsgEmptyPatch)
		return
	}

	vehicle, err := h.service.PatchVehicle(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondServiceError(w, r, OpPatchVehicle, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// HandleCacheStats reports read cache hit rates
// @Summary Read cache stats
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]lookup.Stats
// @Router /api/v1/admin/cache/stats [get]
func (h *RecordHandler) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Stats())
}
