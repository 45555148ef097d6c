package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/handler"
	"github.com/osse101/FleetSync_Go/internal/syncrun"
)

type okPool struct{}

func (okPool) Ping(context.Context) error { return nil }
func (okPool) Close()                     {}

// fakeSync implements only what the routes below call
type fakeSync struct {
	syncrun.Service
	ran []domain.EntityType
}

func (f *fakeSync) Run(_ context.Context, entity domain.EntityType, trigger string) (*domain.SyncRun, error) {
	f.ran = append(f.ran, entity)
	return &domain.SyncRun{ID: "r1", EntityType: entity, Status: domain.SyncStatusCompleted, TriggeredBy: trigger}, nil
}

func (f *fakeSync) Status(context.Context) (*domain.SyncStatusReport, error) {
	return &domain.SyncStatusReport{LastCompleted: map[domain.EntityType]*domain.SyncRun{}}, nil
}

type fakeRecords struct {
	handler.RecordService
}

func (fakeRecords) Driver(_ context.Context, id string) (*domain.DriverCacheRecord, error) {
	return nil, domain.ErrDriverNotFound
}

type fakeEvents struct {
	eventlog.Service
}

func newTestRouter(sync *fakeSync) http.Handler {
	return NewRouter(Options{APIKey: "k", CORSOrigins: []string{"https://ops.example.com"}}, Services{
		DB:      okPool{},
		Sync:    sync,
		Records: fakeRecords{},
		Events:  fakeEvents{},
	})
}

func TestRouter_Routes(t *testing.T) {
	sync := &fakeSync{}
	router := newTestRouter(sync)

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"healthz is public", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz is public", http.MethodGet, "/readyz", "", http.StatusOK},
		{"api requires key", http.MethodGet, "/api/v1/sync/status", "", http.StatusUnauthorized},
		{"sync status", http.MethodGet, "/api/v1/sync/status", "k", http.StatusOK},
		{"trigger drivers", http.MethodPost, "/api/v1/sync/drivers", "k", http.StatusOK},
		{"trigger unknown entity", http.MethodPost, "/api/v1/sync/contracts", "k", http.StatusBadRequest},
		{"driver not found", http.MethodGet, "/api/v1/drivers/missing", "k", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/drivers/missing", "k", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/v1/clients", "k", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("%s %s: expected %d, got %d (%s)", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	if len(sync.ran) != 1 || sync.ran[0] != domain.EntityDrivers {
		t.Errorf("expected one drivers run, got %v", sync.ran)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(&fakeSync{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/drivers", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example.com" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}
}
