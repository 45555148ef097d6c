package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/eventlog"
	"github.com/osse101/FleetSync_Go/internal/lookup"
	"github.com/osse101/FleetSync_Go/internal/vehicles"
	"github.com/osse101/FleetSync_Go/internal/wincpl"
)

// MockSyncService mocks syncrun.Service
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Run(ctx context.Context, entity domain.EntityType, trigger string) (*domain.SyncRun, error) {
	args := m.Called(ctx, entity, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncRun), args.Error(1)
}

func (m *MockSyncService) SyncAll(ctx context.Context, trigger string) domain.SyncAllResult {
	args := m.Called(ctx, trigger)
	return args.Get(0).(domain.SyncAllResult)
}

func (m *MockSyncService) Status(ctx context.Context) (*domain.SyncStatusReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncStatusReport), args.Error(1)
}

func (m *MockSyncService) History(ctx context.Context, entity domain.EntityType, limit int) ([]domain.SyncRun, error) {
	args := m.Called(ctx, entity, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncRun), args.Error(1)
}

func (m *MockSyncService) GetRun(ctx context.Context, id string) (*domain.SyncRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncRun), args.Error(1)
}

func (m *MockSyncService) FailInterrupted(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockRecordService mocks RecordService
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Driver(ctx context.Context, id string) (*domain.DriverCacheRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverCacheRecord), args.Error(1)
}

func (m *MockRecordService) Drivers(ctx context.Context, filter domain.DriverFilter) ([]domain.DriverCacheRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DriverCacheRecord), args.Error(1)
}

func (m *MockRecordService) PatchDriver(ctx context.Context, id string, patch domain.DriverManualPatch) (*domain.DriverCacheRecord, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverCacheRecord), args.Error(1)
}

func (m *MockRecordService) Vehicle(ctx context.Context, id string) (*domain.VehicleCacheRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleCacheRecord), args.Error(1)
}

func (m *MockRecordService) Vehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleCacheRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleCacheRecord), args.Error(1)
}

func (m *MockRecordService) PatchVehicle(ctx context.Context, id string, patch domain.VehicleManualPatch) (*domain.VehicleCacheRecord, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleCacheRecord), args.Error(1)
}

func (m *MockRecordService) Stats() map[domain.EntityType]lookup.Stats {
	args := m.Called()
	return args.Get(0).(map[domain.EntityType]lookup.Stats)
}

// MockImporter mocks WincplImporter
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, docs []wincpl.Document) vehicles.ImportReport {
	args := m.Called(ctx, docs)
	return args.Get(0).(vehicles.ImportReport)
}

// MockEventService mocks eventlog.Service
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockEventService) List(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Entry), args.Error(1)
}

func (m *MockEventService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
