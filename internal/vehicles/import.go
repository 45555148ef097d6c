package vehicles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/event"
	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/metrics"
	"github.com/osse101/FleetSync_Go/internal/wincpl"
)

// ItemError is one failed file or item of an import batch
type ItemError struct {
	File    string `json:"file"`
	Message string `json:"error"`
}

// ImportReport summarises a Wincpl batch
type ImportReport struct {
	Files           int         `json:"files"`
	VehiclesCreated int         `json:"vehicles_created"`
	VehiclesUpdated int         `json:"vehicles_updated"`
	AbsencesApplied int         `json:"absences_applied"`
	AbsencesRemoved int         `json:"absences_removed"`
	Skipped         int         `json:"skipped"`
	Errors          []ItemError `json:"errors"`
}

func (r *ImportReport) fail(file string, err error) {
	r.Errors = append(r.Errors, ItemError{File: file, Message: err.Error()})
}

// Import parses and applies a batch of Wincpl documents. Vehicles are applied
// before absences so an absence can target a vehicle from the same batch.
// Failures are collected per file; the rest of the batch continues.
func (e *Engine) Import(ctx context.Context, docs []wincpl.Document) ImportReport {
	log := logger.FromContext(ctx)
	log.Info(LogMsgImportStarting, "files", len(docs))

	report := ImportReport{Files: len(docs), Errors: []ItemError{}}
	items, parseErrs := wincpl.ParseAll(docs)
	for _, pe := range parseErrs {
		log.Warn(LogMsgImportItemFailed, "file", pe.File, "error", pe.Err)
		metrics.WincplItemsTotal.WithLabelValues(metricTypeFile, metrics.ResultError).Inc()
		report.fail(pe.File, pe.Err)
	}

	for _, item := range items {
		if item.Type != wincpl.TypeVehicle {
			continue
		}
		e.applyVehicle(ctx, item, &report)
	}
	for _, item := range items {
		if item.Type != wincpl.TypeAbsence {
			continue
		}
		e.applyAbsence(ctx, item, &report)
	}

	log.Info(LogMsgImportFinished,
		"vehicles_created", report.VehiclesCreated,
		"vehicles_updated", report.VehiclesUpdated,
		"absences_applied", report.AbsencesApplied,
		"absences_removed", report.AbsencesRemoved,
		"skipped", report.Skipped,
		"errors", len(report.Errors))

	evt := event.NewWincplImportedEvent(event.WincplImportedPayloadV1{
		Files:            report.Files,
		VehiclesUpserted: report.VehiclesCreated + report.VehiclesUpdated,
		AbsencesApplied:  report.AbsencesApplied,
		AbsencesRemoved:  report.AbsencesRemoved,
		Skipped:          report.Skipped,
		Errors:           len(report.Errors),
	})
	if err := e.bus.Publish(ctx, evt); err != nil {
		log.Warn(LogMsgPublishFailed, "error", err)
	}
	return report
}

func (e *Engine) itemTime(item wincpl.Item) time.Time {
	if item.Timestamp != nil {
		return *item.Timestamp
	}
	return e.now()
}

func (e *Engine) applyVehicle(ctx context.Context, item wincpl.Item, report *ImportReport) {
	log := logger.FromContext(ctx)
	if item.IsDeletion() {
		log.Info(LogMsgVehicleDeleteSkip, "file", item.Source, "code", item.Vehicle.Code)
		metrics.WincplItemsTotal.WithLabelValues(metricTypeVehicle, metrics.ResultSkipped).Inc()
		report.Skipped++
		return
	}

	created, err := e.upsertWincplVehicle(ctx, item)
	if err != nil {
		log.Warn(LogMsgImportItemFailed, "file", item.Source, "code", item.Vehicle.Code, "error", err)
		metrics.WincplItemsTotal.WithLabelValues(metricTypeVehicle, metrics.ResultError).Inc()
		report.fail(item.Source, err)
		return
	}
	metrics.WincplItemsTotal.WithLabelValues(metricTypeVehicle, metrics.ResultApplied).Inc()
	if created {
		report.VehiclesCreated++
	} else {
		report.VehiclesUpdated++
	}
}

func (e *Engine) upsertWincplVehicle(ctx context.Context, item wincpl.Item) (bool, error) {
	v := item.Vehicle
	attrs := MapWincpl(*v)
	at := e.itemTime(item)

	existing, err := e.repo.GetVehicleByCode(ctx, v.Code)
	if errors.Is(err, domain.ErrVehicleNotFound) {
		code := v.Code
		rec := &domain.VehicleCacheRecord{
			DataSource:    domain.DataSourceWincpl,
			Code:          &code,
			Attributes:    attrs,
			Absences:      []domain.VehicleAbsence{},
			VehicleManual: newManual(),
			SyncedAt:      at,
		}
		if err := e.repo.InsertVehicle(ctx, rec); err != nil {
			return false, fmt.Errorf("insert vehicle %s: %w", v.Code, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup vehicle %s: %w", v.Code, err)
	}
	if err := e.repo.UpdateVehicleUpstream(ctx, existing.ID, attrs, at); err != nil {
		return false, fmt.Errorf("update vehicle %s: %w", v.Code, err)
	}
	return false, nil
}

func (e *Engine) applyAbsence(ctx context.Context, item wincpl.Item, report *ImportReport) {
	log := logger.FromContext(ctx)
	a := item.Absence

	result, err := e.mergeAbsence(ctx, item)
	if err != nil {
		log.Warn(LogMsgImportItemFailed, "file", item.Source, "numero", a.Number, "vehicle", a.VehicleCode, "error", err)
		metrics.WincplItemsTotal.WithLabelValues(metricTypeAbsence, metrics.ResultError).Inc()
		report.fail(item.Source, err)
		return
	}
	metrics.WincplItemsTotal.WithLabelValues(metricTypeAbsence, result).Inc()
	switch result {
	case metrics.ResultApplied:
		report.AbsencesApplied++
	case metrics.ResultRemoved:
		report.AbsencesRemoved++
	default:
		report.Skipped++
	}
}

// mergeAbsence replaces or appends the absence on its vehicle, or removes it
// for a deletion item, under the vehicle's row lock. It returns the metric
// result label.
func (e *Engine) mergeAbsence(ctx context.Context, item wincpl.Item) (string, error) {
	a := item.Absence
	result := metrics.ResultApplied
	err := e.repo.ModifyVehicleAbsences(ctx, a.VehicleCode, func(vehicle *domain.VehicleCacheRecord) bool {
		if item.IsDeletion() {
			if !vehicle.RemoveAbsence(a.Number) {
				result = metrics.ResultSkipped
				return false
			}
			result = metrics.ResultRemoved
			return true
		}
		vehicle.UpsertAbsence(MapAbsence(*a, e.itemTime(item)))
		return true
	})
	if errors.Is(err, domain.ErrVehicleNotFound) {
		return "", fmt.Errorf("absence %s: vehicle %s: %w", a.Number, a.VehicleCode, err)
	}
	if err != nil {
		return "", fmt.Errorf("absence %s: save: %w", a.Number, err)
	}
	return result, nil
}
