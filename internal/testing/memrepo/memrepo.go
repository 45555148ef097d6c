// Package memrepo holds in-memory implementations of the repository
// interfaces for tests. They mirror the postgres semantics: not-found
// sentinels, manual fields untouched by upstream writes, newest-first ledger.
package memrepo

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

var (
	_ repository.DriverCache   = (*Drivers)(nil)
	_ repository.VehicleCache  = (*Vehicles)(nil)
	_ repository.SyncRunLedger = (*Ledger)(nil)
)

// ErrInjected is returned by operations configured to fail
var ErrInjected = errors.New("injected failure")

// Drivers is an in-memory driver cache
type Drivers struct {
	mu   sync.Mutex
	rows map[string]domain.DriverCacheRecord
	now  func() time.Time

	// FailDeleteCall makes the n-th (1-based) delete call fail
	FailDeleteCall int
	// FailUpdateFor makes updates of the given external id fail
	FailUpdateFor map[int]bool
	deleteCalls   int
	DeleteBatches [][]int
}

// NewDrivers creates an empty driver cache
func NewDrivers() *Drivers {
	return &Drivers{rows: map[string]domain.DriverCacheRecord{}, now: time.Now}
}

// Seed stores records as-is, assigning ids when empty
func (d *Drivers) Seed(recs ...domain.DriverCacheRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range recs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		d.rows[r.ID] = r
	}
}

// All returns every record ordered by external id
func (d *Drivers) All() []domain.DriverCacheRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.DriverCacheRecord, 0, len(d.rows))
	for _, r := range d.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}

func (d *Drivers) GetDriverByID(_ context.Context, id string) (*domain.DriverCacheRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.rows[id]
	if !ok {
		return nil, domain.ErrDriverNotFound
	}
	return &r, nil
}

func (d *Drivers) GetDriverByExternalID(_ context.Context, externalID int) (*domain.DriverCacheRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.rows {
		if r.ExternalID == externalID {
			return &r, nil
		}
	}
	return nil, domain.ErrDriverNotFound
}

func (d *Drivers) ListDrivers(_ context.Context, f domain.DriverFilter) ([]domain.DriverCacheRecord, error) {
	all := d.All()
	out := all[:0:0]
	for _, r := range all {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.TeamID != nil && (r.TeamID == nil || *r.TeamID != *f.TeamID) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(r.FullName+" "+r.Matricule), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, r)
	}
	return page(out, f.Offset, f.Limit), nil
}

func (d *Drivers) InsertDriver(_ context.Context, rec *domain.DriverCacheRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := d.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	d.rows[rec.ID] = *rec
	return nil
}

func (d *Drivers) UpdateDriverUpstream(_ context.Context, id string, up domain.DriverUpstream, avail *domain.AvailabilityChange, syncedAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.rows[id]
	if !ok {
		return domain.ErrDriverNotFound
	}
	if d.FailUpdateFor[up.ExternalID] {
		return ErrInjected
	}
	r.DriverUpstream = up
	if avail != nil {
		r.Status = avail.Status
		r.UnavailabilityNote = avail.Reason
	}
	r.SyncedAt = syncedAt
	r.UpdatedAt = d.now()
	d.rows[id] = r
	return nil
}

func (d *Drivers) UpdateDriverManual(_ context.Context, id string, manual domain.DriverManual) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.rows[id]
	if !ok {
		return domain.ErrDriverNotFound
	}
	r.DriverManual = manual
	r.UpdatedAt = d.now()
	d.rows[id] = r
	return nil
}

func (d *Drivers) ListDriverExternalIDs(_ context.Context) ([]int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int, 0, len(d.rows))
	for _, r := range d.rows {
		out = append(out, r.ExternalID)
	}
	slices.Sort(out)
	return out, nil
}

func (d *Drivers) DeleteDriversByExternalIDs(_ context.Context, ids []int) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteCalls++
	d.DeleteBatches = append(d.DeleteBatches, slices.Clone(ids))
	if d.FailDeleteCall == d.deleteCalls {
		return 0, ErrInjected
	}
	var n int64
	for id, r := range d.rows {
		if slices.Contains(ids, r.ExternalID) {
			delete(d.rows, id)
			n++
		}
	}
	return n, nil
}

// Vehicles is an in-memory vehicle cache
type Vehicles struct {
	mu   sync.Mutex
	rows map[string]domain.VehicleCacheRecord
	now  func() time.Time

	FailDeleteCall int
	deleteCalls    int
	DeleteBatches  [][]int64
}

// NewVehicles creates an empty vehicle cache
func NewVehicles() *Vehicles {
	return &Vehicles{rows: map[string]domain.VehicleCacheRecord{}, now: time.Now}
}

// Seed stores records as-is, assigning ids when empty
func (v *Vehicles) Seed(recs ...domain.VehicleCacheRecord) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range recs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		v.rows[r.ID] = r
	}
}

// All returns every record ordered by plate then id
func (v *Vehicles) All() []domain.VehicleCacheRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.VehicleCacheRecord, 0, len(v.rows))
	for _, r := range v.rows {
		r.Absences = slices.Clone(r.Absences)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attributes.Plate != out[j].Attributes.Plate {
			return out[i].Attributes.Plate < out[j].Attributes.Plate
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (v *Vehicles) find(match func(domain.VehicleCacheRecord) bool) (*domain.VehicleCacheRecord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.rows {
		if match(r) {
			r.Absences = slices.Clone(r.Absences)
			return &r, nil
		}
	}
	return nil, domain.ErrVehicleNotFound
}

func (v *Vehicles) GetVehicleByID(_ context.Context, id string) (*domain.VehicleCacheRecord, error) {
	return v.find(func(r domain.VehicleCacheRecord) bool { return r.ID == id })
}

func (v *Vehicles) GetVehicleByExternalID(_ context.Context, externalID int64) (*domain.VehicleCacheRecord, error) {
	return v.find(func(r domain.VehicleCacheRecord) bool {
		return r.DataSource == domain.DataSourceMyRentCar && r.ExternalID != nil && *r.ExternalID == externalID
	})
}

func (v *Vehicles) GetVehicleByCode(_ context.Context, code string) (*domain.VehicleCacheRecord, error) {
	return v.find(func(r domain.VehicleCacheRecord) bool {
		return r.DataSource == domain.DataSourceWincpl && r.Code != nil && *r.Code == code
	})
}

func (v *Vehicles) ListVehicles(_ context.Context, f domain.VehicleFilter) ([]domain.VehicleCacheRecord, error) {
	all := v.All()
	out := all[:0:0]
	for _, r := range all {
		if f.DataSource != "" && r.DataSource != f.DataSource {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(r.Attributes.Plate+" "+r.Attributes.Brand), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, r)
	}
	return page(out, f.Offset, f.Limit), nil
}

func (v *Vehicles) InsertVehicle(_ context.Context, rec *domain.VehicleCacheRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := v.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	stored := *rec
	stored.Absences = slices.Clone(rec.Absences)
	v.rows[rec.ID] = stored
	return nil
}

func (v *Vehicles) update(id string, mutate func(*domain.VehicleCacheRecord)) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	r, ok := v.rows[id]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	mutate(&r)
	r.UpdatedAt = v.now()
	v.rows[id] = r
	return nil
}

func (v *Vehicles) UpdateVehicleUpstream(_ context.Context, id string, attrs domain.VehicleAttributes, syncedAt time.Time) error {
	return v.update(id, func(r *domain.VehicleCacheRecord) {
		r.Attributes = attrs
		r.SyncedAt = syncedAt
	})
}

// ModifyVehicleAbsences holds the cache lock across modify, like a row lock
func (v *Vehicles) ModifyVehicleAbsences(_ context.Context, code string, modify func(*domain.VehicleCacheRecord) bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for id, r := range v.rows {
		if r.DataSource != domain.DataSourceWincpl || r.Code == nil || *r.Code != code {
			continue
		}
		r.Absences = slices.Clone(r.Absences)
		if !modify(&r) {
			return nil
		}
		r.UpdatedAt = v.now()
		v.rows[id] = r
		return nil
	}
	return domain.ErrVehicleNotFound
}

func (v *Vehicles) UpdateVehicleManual(_ context.Context, id string, manual domain.VehicleManual) error {
	return v.update(id, func(r *domain.VehicleCacheRecord) {
		r.VehicleManual = manual
	})
}

func (v *Vehicles) ListRentalExternalIDs(_ context.Context) ([]int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []int64
	for _, r := range v.rows {
		if r.DataSource == domain.DataSourceMyRentCar && r.ExternalID != nil {
			out = append(out, *r.ExternalID)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (v *Vehicles) DeleteRentalVehiclesByExternalIDs(_ context.Context, ids []int64) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleteCalls++
	v.DeleteBatches = append(v.DeleteBatches, slices.Clone(ids))
	if v.FailDeleteCall == v.deleteCalls {
		return 0, ErrInjected
	}
	var n int64
	for id, r := range v.rows {
		if r.DataSource == domain.DataSourceMyRentCar && r.ExternalID != nil && slices.Contains(ids, *r.ExternalID) {
			delete(v.rows, id)
			n++
		}
	}
	return n, nil
}

// Ledger is an in-memory run ledger
type Ledger struct {
	mu   sync.Mutex
	runs []domain.SyncRun
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) CreateRun(_ context.Context, run *domain.SyncRun) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	l.runs = append(l.runs, *run)
	return nil
}

func (l *Ledger) FinishRun(_ context.Context, run *domain.SyncRun) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.runs {
		if l.runs[i].ID != run.ID {
			continue
		}
		if l.runs[i].Status.Terminal() {
			return domain.ErrRunAlreadyFinished
		}
		l.runs[i] = *run
		return nil
	}
	return domain.ErrSyncRunNotFound
}

func (l *Ledger) GetRun(_ context.Context, id string) (*domain.SyncRun, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.runs {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, domain.ErrSyncRunNotFound
}

func (l *Ledger) sorted() []domain.SyncRun {
	out := slices.Clone(l.runs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out
}

func (l *Ledger) LastCompleted(_ context.Context, entity domain.EntityType) (*domain.SyncRun, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.sorted() {
		if r.EntityType == entity && r.Status == domain.SyncStatusCompleted {
			return &r, nil
		}
	}
	return nil, nil
}

func (l *Ledger) ListInProgress(_ context.Context) ([]domain.SyncRun, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []domain.SyncRun{}
	for _, r := range l.sorted() {
		if r.Status == domain.SyncStatusInProgress {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *Ledger) ListRecent(_ context.Context, entity domain.EntityType, limit int) ([]domain.SyncRun, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []domain.SyncRun{}
	for _, r := range l.sorted() {
		if entity != "" && entity != domain.EntityAll && r.EntityType != entity {
			continue
		}
		out = append(out, r)
	}
	return page(out, 0, limit), nil
}

func page[T any](rows []T, offset, limit int) []T {
	if offset > len(rows) {
		return rows[:0]
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
