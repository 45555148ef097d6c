package drivers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/FleetSync_Go/internal/cleanup"
	"github.com/osse101/FleetSync_Go/internal/customfield"
	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/hr"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/metrics"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

// Result is the outcome of one driver sync. On failure it still carries the
// counts reached before the error.
type Result struct {
	domain.SyncCounts
	Cleanup         cleanup.Result
	Unresolved      []string
	AllEmployeesRun bool
}

// Engine reconciles HR employees into the driver cache
type Engine struct {
	source   Source
	repo     repository.DriverCache
	resolver *customfield.Resolver
	cleaner  *cleanup.Cleaner
	now      func() time.Time
}

// NewEngine creates a driver reconciliation engine
func NewEngine(source Source, repo repository.DriverCache, resolver *customfield.Resolver, cleaner *cleanup.Cleaner) *Engine {
	return &Engine{
		source:   source,
		repo:     repo,
		resolver: resolver,
		cleaner:  cleaner,
		now:      time.Now,
	}
}

// WithClock overrides the clock used for "today" and sync timestamps
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Sync runs one full reconciliation. The upsert loop is sequential and in
// employee id order so counts are deterministic.
func (e *Engine) Sync(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSyncStarting)

	now := e.now()
	snap, err := fetchSnapshot(ctx, e.source, now)
	if err != nil {
		return Result{}, err
	}
	log.Info(LogMsgReferenceFetched,
		"employees", len(snap.employees),
		"teams", len(snap.teams),
		"field_values", len(snap.fields.Values),
		"leaves", len(snap.leaves))

	members, fallback := snap.scope(e.resolver.Tables().DriverTeamKeyword)
	if fallback {
		log.Warn(LogMsgNoDriverTeams, "keyword", e.resolver.Tables().DriverTeamKeyword, "employees", len(snap.employees))
	}

	run := e.resolver.Build(ctx, snap.fields)
	onLeave := snap.leaveReasons(now)

	res := Result{Unresolved: run.Unresolved(), AllEmployeesRun: fallback}
	metrics.UnresolvedCustomFields.Set(float64(len(res.Unresolved)))

	employees := append([]hr.Employee(nil), snap.employees...)
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	keep := make([]int, 0, len(members))
	for _, emp := range employees {
		team, inScope := members[emp.ID]
		if !inScope {
			continue
		}
		keep = append(keep, emp.ID)

		upstream := buildUpstream(emp, team, run)
		reason, leave := onLeave[emp.ID]

		created, err := e.upsert(ctx, upstream, leave, reason, now)
		if err != nil {
			return res, fmt.Errorf("driver %d: %w", emp.ID, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		res.Synced++
	}

	store := cleanup.StoreFuncs[int]{List: e.repo.ListDriverExternalIDs, Delete: e.repo.DeleteDriversByExternalIDs}
	cres, err := cleanup.Orphans(ctx, e.cleaner, domain.EntityDrivers, store, keep)
	if err != nil {
		log.Warn(LogMsgCleanupFailed, "error", err)
	}
	res.Cleanup = cres

	log.Info(LogMsgSyncFinished,
		"synced", res.Synced,
		"created", res.Created,
		"updated", res.Updated,
		"orphans_deleted", cres.Deleted)
	return res, nil
}

// upsert writes one driver and reports whether it was created
func (e *Engine) upsert(ctx context.Context, upstream domain.DriverUpstream, onLeave bool, reason string, now time.Time) (bool, error) {
	existing, err := e.repo.GetDriverByExternalID(ctx, upstream.ExternalID)
	if errors.Is(err, domain.ErrDriverNotFound) {
		rec := newRecord(upstream, onLeave, reason, now)
		if err := e.repo.InsertDriver(ctx, rec); err != nil {
			return false, fmt.Errorf("insert: %w", err)
		}
		logger.FromContext(ctx).Debug(LogMsgDriverCreated, "external_id", upstream.ExternalID, "status", rec.Status)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup: %w", err)
	}

	change := Availability(existing.Status, onLeave, reason)
	if change != nil {
		msg := LogMsgDriverOnLeave
		if change.Status == domain.DriverStatusAvailable {
			msg = LogMsgDriverBackFromOff
		}
		logger.FromContext(ctx).Info(msg, "external_id", upstream.ExternalID, "reason", change.Reason)
	}
	if err := e.repo.UpdateDriverUpstream(ctx, existing.ID, upstream, change, now); err != nil {
		return false, fmt.Errorf("update: %w", err)
	}
	return false, nil
}

// Availability decides the only manual-field change a sync may make.
// Occupied drivers are never touched; leave makes a driver unavailable; a
// driver left unavailable with no leave today becomes available again.
func Availability(current domain.DriverStatus, onLeave bool, reason string) *domain.AvailabilityChange {
	switch {
	case onLeave && current != domain.DriverStatusOccupied:
		return &domain.AvailabilityChange{Status: domain.DriverStatusUnavailable, Reason: reason}
	case !onLeave && current == domain.DriverStatusUnavailable:
		return &domain.AvailabilityChange{Status: domain.DriverStatusAvailable}
	}
	return nil
}

func newRecord(upstream domain.DriverUpstream, onLeave bool, reason string, now time.Time) *domain.DriverCacheRecord {
	manual := domain.DriverManual{
		Permits:        []string{},
		Certifications: []string{},
		Status:         domain.DriverStatusAvailable,
	}
	if onLeave {
		manual.Status = domain.DriverStatusUnavailable
		manual.UnavailabilityNote = reason
	}
	return &domain.DriverCacheRecord{
		DriverUpstream: upstream,
		DriverManual:   manual,
		SyncedAt:       now,
	}
}

func buildUpstream(emp hr.Employee, team *teamAssignment, run *customfield.Run) domain.DriverUpstream {
	up := domain.DriverUpstream{
		ExternalID:   emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		FullName:     emp.DisplayName(),
		Email:        emp.Email,
		Phone:        emp.PhoneNumber,
		AddressLine:  emp.Address(),
		PostalCode:   emp.PostalCode,
		City:         emp.City,
		Country:      emp.Country,
		CustomFields: run.FieldsFor(emp.ID),
	}
	if team != nil {
		id := team.id
		up.TeamID = &id
		up.TeamName = team.name
	}
	return up
}
