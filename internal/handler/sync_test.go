package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/domain"
)

func syncRouter(svc *MockSyncService) http.Handler {
	h := NewSyncHandler(svc)
	r := chi.NewRouter()
	r.Post("/sync/{entity}", h.HandleTriggerSync)
	r.Get("/sync/status", h.HandleSyncStatus)
	r.Get("/sync/history", h.HandleSyncHistory)
	r.Get("/sync/runs/{id}", h.HandleGetRun)
	return r
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleTriggerSync(t *testing.T) {
	finished := time.Date(2026, 3, 2, 10, 0, 5, 0, time.UTC)

	t.Run("completed run", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("Run", mock.Anything, domain.EntityDrivers, domain.TriggerManual).Return(&domain.SyncRun{
			ID:         "run-1",
			EntityType: domain.EntityDrivers,
			Status:     domain.SyncStatusCompleted,
			FinishedAt: &finished,
			SyncCounts: domain.SyncCounts{Synced: 3, Created: 1, Updated: 2},
		}, nil)

		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodPost, "/sync/drivers", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Message string         `json:"message"`
			Data    domain.SyncRun `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, MsgSyncCompleted, body.Message)
		assert.Equal(t, 3, body.Data.Synced)
		svc.AssertExpectations(t)
	})

	t.Run("failed run is still a 200", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("Run", mock.Anything, domain.EntityVehicles, domain.TriggerManual).Return(&domain.SyncRun{
			ID:           "run-2",
			EntityType:   domain.EntityVehicles,
			Status:       domain.SyncStatusFailed,
			ErrorMessage: "fetch vehicle ids: boom",
		}, nil)

		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodPost, "/sync/vehicles", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgSyncFailed)
		assert.Contains(t, w.Body.String(), "fetch vehicle ids: boom")
	})

	t.Run("all runs both pipelines", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("SyncAll", mock.Anything, domain.TriggerManual).Return(domain.SyncAllResult{
			Drivers:       &domain.SyncRun{ID: "d", Status: domain.SyncStatusCompleted},
			Vehicles:      &domain.SyncRun{ID: "v", Status: domain.SyncStatusFailed},
			VehiclesError: "login failed",
		})

		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodPost, "/sync/all", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"vehicles_error":"login failed"`)
		svc.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown entity", func(t *testing.T) {
		svc := new(MockSyncService)

		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodPost, "/sync/clients", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent run rejected", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("Run", mock.Anything, domain.EntityDrivers, domain.TriggerManual).Return(nil, domain.ErrSyncInProgress)

		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodPost, "/sync/drivers", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgSyncInProgressError)
	})

	t.Run("ledger failure", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("Run", mock.Anything, domain.EntityDrivers, domain.TriggerManual).
			Return(nil, fmt.Errorf("create sync run: %w", errors.New("conn reset")))

		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodPost, "/sync/drivers", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "conn reset")
	})
}

func TestHandleSyncHistory(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantEntity domain.EntityType
		wantLimit  int
	}{
		{"defaults", "", domain.EntityAll, 20},
		{"entity and limit", "?entity=vehicles&limit=5", domain.EntityVehicles, 5},
		{"oversized limit passed through for clamping", "?limit=1000", domain.EntityAll, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSyncService)
			svc.On("History", mock.Anything, tt.wantEntity, tt.wantLimit).
				Return([]domain.SyncRun{{ID: "a"}, {ID: "b"}}, nil)

			w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/history"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"count":2`)
			svc.AssertExpectations(t)
		})
	}

	t.Run("malformed limit", func(t *testing.T) {
		svc := new(MockSyncService)
		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/history?limit=ten", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
	})

	t.Run("invalid entity", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("History", mock.Anything, domain.EntityType("trucks"), 20).Return(nil, domain.ErrInvalidEntityType)
		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/history?entity=trucks", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		svc := new(MockSyncService)
		svc.On("History", mock.Anything, domain.EntityAll, 20).Return([]domain.SyncRun(nil), nil)
		w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/history", nil))
		assert.JSONEq(t, `{"count":0,"items":[]}`, w.Body.String())
	})
}

func TestHandleSyncStatus(t *testing.T) {
	svc := new(MockSyncService)
	svc.On("Status", mock.Anything).Return(&domain.SyncStatusReport{
		LastCompleted: map[domain.EntityType]*domain.SyncRun{
			domain.EntityDrivers:  {ID: "d1", Status: domain.SyncStatusCompleted},
			domain.EntityVehicles: nil,
		},
		InProgress: []domain.SyncRun{{ID: "v2", Status: domain.SyncStatusInProgress}},
	}, nil)

	w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var report domain.SyncStatusReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "d1", report.LastCompleted[domain.EntityDrivers].ID)
	assert.Nil(t, report.LastCompleted[domain.EntityVehicles])
	assert.Len(t, report.InProgress, 1)
}

func TestHandleGetRun(t *testing.T) {
	svc := new(MockSyncService)
	svc.On("GetRun", mock.Anything, "known").Return(&domain.SyncRun{ID: "known"}, nil)
	svc.On("GetRun", mock.Anything, "missing").Return(nil, fmt.Errorf("get run: %w", domain.ErrSyncRunNotFound))

	w := serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/runs/known", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, syncRouter(svc), httptest.NewRequest(http.MethodGet, "/sync/runs/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgSyncRunNotFoundError)
}
