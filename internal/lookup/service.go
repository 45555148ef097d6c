package lookup

import (
	"context"
	"fmt"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

// Service serves cache reads and operator edits. Single-record reads go
// through an expiring LRU that is purged whenever a sync touches the entity.
type Service struct {
	drivers      repository.DriverCache
	vehicles     repository.VehicleCache
	bus          event.Bus
	driverCache  *cache[domain.DriverCacheRecord]
	vehicleCache *cache[domain.VehicleCacheRecord]
}

// NewService creates the lookup service
func NewService(drivers repository.DriverCache, vehicles repository.VehicleCache, bus event.Bus, cfg Config) *Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &Service{
		drivers:      drivers,
		vehicles:     vehicles,
		bus:          bus,
		driverCache:  newCache[domain.DriverCacheRecord](cfg),
		vehicleCache: newCache[domain.VehicleCacheRecord](cfg),
	}
}

// Register subscribes the purge handlers
func (s *Service) Register(bus event.Bus) {
	bus.Subscribe(event.SyncRunFinished, s.handleRunFinished)
	bus.Subscribe(event.WincplImported, func(ctx context.Context, _ event.Event) error {
		s.Purge(ctx, domain.EntityVehicles)
		return nil
	})
}

func (s *Service) handleRunFinished(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.SyncRunPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("decode run payload: %w", err)
	}
	s.Purge(ctx, p.EntityType)
	return nil
}

// Purge drops every cached record of the entity type. EntityAll drops both.
func (s *Service) Purge(ctx context.Context, entity domain.EntityType) {
	switch entity {
	case domain.EntityDrivers:
		s.driverCache.purge()
	case domain.EntityVehicles:
		s.vehicleCache.purge()
	default:
		s.driverCache.purge()
		s.vehicleCache.purge()
	}
	logger.FromContext(ctx).Debug(LogMsgCachePurged, logger.AttrKeyEntity, entity)
}

// Stats returns driver and vehicle cache stats
func (s *Service) Stats() map[domain.EntityType]Stats {
	return map[domain.EntityType]Stats{
		domain.EntityDrivers:  s.driverCache.stats(),
		domain.EntityVehicles: s.vehicleCache.stats(),
	}
}

// Driver returns one driver by cache id
func (s *Service) Driver(ctx context.Context, id string) (*domain.DriverCacheRecord, error) {
	if rec, ok := s.driverCache.get(id); ok {
		return &rec, nil
	}
	rec, err := s.drivers.GetDriverByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.driverCache.set(id, *rec)
	return rec, nil
}

// Drivers lists drivers. Listings are never cached.
func (s *Service) Drivers(ctx context.Context, filter domain.DriverFilter) ([]domain.DriverCacheRecord, error) {
	return s.drivers.ListDrivers(ctx, filter)
}

// PatchDriver applies an operator edit to the manual fields only
func (s *Service) PatchDriver(ctx context.Context, id string, patch domain.DriverManualPatch) (*domain.DriverCacheRecord, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: empty patch", domain.ErrInvalidInput)
	}
	rec, err := s.drivers.GetDriverByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.DriverManual.Apply(patch)
	if err := s.drivers.UpdateDriverManual(ctx, id, rec.DriverManual); err != nil {
		return nil, fmt.Errorf("update driver %s: %w", id, err)
	}
	s.driverCache.invalidate(id)
	s.patched(ctx, domain.EntityDrivers, id)
	return rec, nil
}

// Vehicle returns one vehicle by cache id
func (s *Service) Vehicle(ctx context.Context, id string) (*domain.VehicleCacheRecord, error) {
	if rec, ok := s.vehicleCache.get(id); ok {
		return &rec, nil
	}
	rec, err := s.vehicles.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.vehicleCache.set(id, *rec)
	return rec, nil
}

// Vehicles lists vehicles. Listings are never cached.
func (s *Service) Vehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.VehicleCacheRecord, error) {
	return s.vehicles.ListVehicles(ctx, filter)
}

// PatchVehicle applies an operator edit to the manual fields only
func (s *Service) PatchVehicle(ctx context.Context, id string, patch domain.VehicleManualPatch) (*domain.VehicleCacheRecord, error) {
	if patch.Empty() {
		return nil, fmt.Errorf("%w: empty patch", domain.ErrInvalidInput)
	}
	rec, err := s.vehicles.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.VehicleManual.Apply(patch)
	if err := s.vehicles.UpdateVehicleManual(ctx, id, rec.VehicleManual); err != nil {
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}
	s.vehicleCache.invalidate(id)
	s.patched(ctx, domain.EntityVehicles, id)
	return rec, nil
}

func (s *Service) patched(ctx context.Context, entity domain.EntityType, id string) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPatchApplied, logger.AttrKeyEntity, entity, "id", id)
	if err := s.bus.Publish(ctx, event.NewCacheRecordPatchEvent(entity, id)); err != nil {
		log.Warn(LogMsgPublishFailed, "error", err)
	}
}
