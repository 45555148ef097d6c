package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	mockBus := new(MockEventBus)

	for _, et := range LoggedTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent_RunFinished(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	start := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	evt := event.NewSyncRunFinishedEvent(domain.SyncRun{
		ID:         "run-1",
		EntityType: domain.EntityDrivers,
		Status:     domain.SyncStatusCompleted,
		StartedAt:  start,
		FinishedAt: &end,
		SyncCounts: domain.SyncCounts{Synced: 4},
	})

	mockRepo.On("LogEvent", ctx, mock.MatchedBy(func(e Entry) bool {
		return e.EventType == string(event.SyncRunFinished) &&
			e.RunID != nil && *e.RunID == "run-1" &&
			e.EntityType == "drivers" &&
			e.Payload["status"] == "completed"
	})).Return(nil)

	err := svc.handleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_MapPayloadWithoutRun(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	payload := map[string]interface{}{"files": float64(2)}
	mockRepo.On("LogEvent", ctx, Entry{EventType: string(event.WincplImported), Payload: payload}).Return(nil)

	err := svc.handleEvent(ctx, event.Event{Type: event.WincplImported, Payload: payload})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	mockRepo.On("LogEvent", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err := svc.handleEvent(context.Background(), event.NewWincplImportedEvent(event.WincplImportedPayloadV1{Files: 1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestService_HandleEvent_SkipsScalarPayload(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	err := svc.handleEvent(context.Background(), event.Event{Type: event.WincplImported, Payload: "nope"})
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything)
}

func TestService_ListClampsLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetEvents", ctx, Filter{Limit: DefaultListLimit}).Return([]Entry{}, nil).Once()
	mockRepo.On("GetEvents", ctx, Filter{EventType: "wincpl.imported", Limit: MaxListLimit}).Return([]Entry{{ID: 1}}, nil).Once()

	_, err := service.List(ctx, Filter{})
	require.NoError(t, err)
	entries, err := service.List(ctx, Filter{EventType: "wincpl.imported", Limit: 10_000})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	mockRepo.AssertExpectations(t)
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)
	mockRepo.On("CleanupOldEvents", ctx, DefaultRetentionDays).Return(int64(0), nil)

	count, err := service.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)

	_, err = service.CleanupOldEvents(ctx, 0)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
