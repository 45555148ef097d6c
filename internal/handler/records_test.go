package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/lookup"
)

func recordRouter(svc *MockRecordService) http.Handler {
	h := NewRecordHandler(svc)
	r := chi.NewRouter()
	r.Get("/drivers", h.HandleListDrivers)
	r.Get("/drivers/{id}", h.HandleGetDriver)
	r.Patch("/drivers/{id}", h.HandlePatchDriver)
	r.Get("/vehicles", h.HandleListVehicles)
	r.Get("/vehicles/{id}", h.HandleGetVehicle)
	r.Patch("/vehicles/{id}", h.HandlePatchVehicle)
	r.Get("/cache/stats", h.HandleCacheStats)
	return r
}

func patchRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleListDrivers(t *testing.T) {
	t.Run("filters are passed through", func(t *testing.T) {
		svc := new(MockRecordService)
		team := 7
		svc.On("Drivers", mock.Anything, domain.DriverFilter{
			Status: domain.DriverStatusUnavailable,
			TeamID: &team,
			Search: "dupont",
			Limit:  10,
			Offset: 20,
		}).Return([]domain.DriverCacheRecord{{ID: "d1"}}, nil)

		w := serve(t, recordRouter(svc), httptest.NewRequest(http.MethodGet,
			"/drivers?status=indisponible&team_id=7&q=dupont&limit=10&offset=20", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
		svc.AssertExpectations(t)
	})

	bad := []struct {
		name  string
		query string
		want  string
	}{
		{"unknown status", "?status=sleeping", ErrMsgInvalidStatus},
		{"non numeric team", "?team_id=north", ErrMsgInvalidTeamID},
		{"negative offset", "?offset=-1", ErrMsgInvalidOffset},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRecordService)
			w := serve(t, recordRouter(svc), httptest.NewRequest(http.MethodGet, "/drivers"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			svc.AssertNotCalled(t, "Drivers", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleGetDriver_NotFound(t *testing.T) {
	svc := new(MockRecordService)
	svc.On("Driver", mock.Anything, "nope").Return(nil, domain.ErrDriverNotFound)

	w := serve(t, recordRouter(svc), httptest.NewRequest(http.MethodGet, "/drivers/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgDriverNotFoundError)
}

func TestHandlePatchDriver(t *testing.T) {
	t.Run("applies manual fields", func(t *testing.T) {
		svc := new(MockRecordService)
		status := domain.DriverStatusUnavailable
		note := "Formation"
		svc.On("PatchDriver", mock.Anything, "d1", domain.DriverManualPatch{
			Status:             &status,
			UnavailabilityNote: &note,
		}).Return(&domain.DriverCacheRecord{
			ID:           "d1",
			DriverManual: domain.DriverManual{Status: status, UnavailabilityNote: note},
		}, nil)

		w := serve(t, recordRouter(svc), patchRequest("/drivers/d1",
			`{"status":"indisponible","indisponibilite_raison":"Formation"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var rec domain.DriverCacheRecord
		require.NoError(t, json.NewDecoder(w.Body).Decode(&rec))
		assert.Equal(t, domain.DriverStatusUnavailable, rec.Status)
		svc.AssertExpectations(t)
	})

	t.Run("upstream fields are rejected", func(t *testing.T) {
		svc := new(MockRecordService)
		w := serve(t, recordRouter(svc), patchRequest("/drivers/d1", `{"email":"x@example.com"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "PatchDriver", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := new(MockRecordService)
		w := serve(t, recordRouter(svc), patchRequest("/drivers/d1", `{"status":"asleep"}`))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp ValidationErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Contains(t, resp.Fields, "status")
	})

	t.Run("empty patch", func(t *testing.T) {
		svc := new(MockRecordService)
		w := serve(t, recordRouter(svc), patchRequest("/drivers/d1", `{}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgEmptyPatch)
	})
}

func TestHandleListVehicles(t *testing.T) {
	svc := new(MockRecordService)
	svc.On("Vehicles", mock.Anything, domain.VehicleFilter{DataSource: domain.DataSourceWincpl}).
		Return([]domain.VehicleCacheRecord{{ID: "v1"}, {ID: "v2"}}, nil)

	w := serve(t, recordRouter(svc), httptest.NewRequest(http.MethodGet, "/vehicles?source=wincpl", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)

	w = serve(t, recordRouter(svc), httptest.NewRequest(http.MethodGet, "/vehicles?source=excel", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidDataSource)
}

func TestHandlePatchVehicle(t *testing.T) {
	t.Run("unassigns with an empty driver id", func(t *testing.T) {
		svc := new(MockRecordService)
		empty := ""
		svc.On("PatchVehicle", mock.Anything, "v1", domain.VehicleManualPatch{AssignedDriverID: &empty}).
			Return(&domain.VehicleCacheRecord{ID: "v1"}, nil)

		w := serve(t, recordRouter(svc), patchRequest("/vehicles/v1", `{"assigned_driver_id":""}`))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("driver id must be a uuid", func(t *testing.T) {
		svc := new(MockRecordService)
		w := serve(t, recordRouter(svc), patchRequest("/vehicles/v1", `{"assigned_driver_id":"driver-7"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "assigned_driver_id")
	})

	t.Run("missing vehicle", func(t *testing.T) {
		svc := new(MockRecordService)
		status := domain.VehicleStatusMaintenance
		svc.On("PatchVehicle", mock.Anything, "gone", domain.VehicleManualPatch{Status: &status}).
			Return(nil, domain.ErrVehicleNotFound)

		w := serve(t, recordRouter(svc), patchRequest("/vehicles/gone", `{"status":"maintenance"}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleCacheStats(t *testing.T) {
	svc := new(MockRecordService)
	svc.On("Stats").Return(map[domain.EntityType]lookup.Stats{
		domain.EntityDrivers:  {Hits: 4, Misses: 1, Size: 1},
		domain.EntityVehicles: {},
	})

	w := serve(t, recordRouter(svc), httptest.NewRequest(http.MethodGet, "/cache/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]lookup.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, int64(4), stats["drivers"].Hits)
}
