package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleetSync_Go/internal/domain"
	"github.com/osse101/FleetSync_Go/internal/repository"
)

const vehicleColumns = `
	id, data_source, external_id, code, attributes, absences,
	status, compatible_trailer_types, equipment, location,
	next_maintenance_at, next_inspection_at, assigned_driver_id,
	synced_at, created_at, updated_at`

type vehicleRepository struct {
	db *pgxpool.Pool
}

// NewVehicleRepository creates a PostgreSQL vehicle cache
func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleCache {
	return &vehicleRepository{db: db}
}

func scanVehicle(row pgx.Row) (*domain.VehicleCacheRecord, error) {
	var (
		rec             domain.VehicleCacheRecord
		attrs, absences []byte
	)
	err := row.Scan(
		&rec.ID, &rec.DataSource, &rec.ExternalID, &rec.Code, &attrs, &absences,
		&rec.Status, &rec.TrailerTypes, &rec.Equipment, &rec.Location,
		&rec.NextMaintenanceAt, &rec.NextInspectionAt, &rec.AssignedDriverID,
		&rec.SyncedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attrs, &rec.Attributes); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeAttrs, err)
	}
	if err := json.Unmarshal(absences, &rec.Absences); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeAttrs, err)
	}
	if rec.Absences == nil {
		rec.Absences = []domain.VehicleAbsence{}
	}
	return &rec, nil
}

func (r *vehicleRepository) getOne(ctx context.Context, where string, arg any) (*domain.VehicleCacheRecord, error) {
	rec, err := scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicle_cache WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetVehicle, err)
	}
	return rec, nil
}

func (r *vehicleRepository) GetVehicleByID(ctx context.Context, id string) (*domain.VehicleCacheRecord, error) {
	if !isUUID(id) {
		return nil, domain.ErrVehicleNotFound
	}
	return r.getOne(ctx, "id = $1", id)
}

func (r *vehicleRepository) GetVehicleByExternalID(ctx context.Context, externalID int64) (*domain.VehicleCacheRecord, error) {
	return r.getOne(ctx, "data_source = 'myrentcar' AND external_id = $1", externalID)
}

func (r *vehicleRepository) GetVehicleByCode(ctx context.Context, code string) (*domain.VehicleCacheRecord, error) {
	return r.getOne(ctx, "data_source = 'wincpl' AND code = $1", code)
}

func (r *vehicleRepository) ListVehicles(ctx context.Context, f domain.VehicleFilter) ([]domain.VehicleCacheRecord, error) {
	q := newQuery(`SELECT ` + vehicleColumns + ` FROM vehicle_cache`)
	if f.DataSource != "" {
		q.where("data_source = $%d", string(f.DataSource))
	}
	if f.Status != "" {
		q.where("status = $%d", string(f.Status))
	}
	if f.Search != "" {
		q.where("(attributes->>'plate' || ' ' || attributes->>'brand' || ' ' || COALESCE(code, '')) ILIKE $%d", likePattern(f.Search))
	}
	q.raw(" ORDER BY attributes->>'plate', id")
	q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListVehicles, err)
	}
	defer rows.Close()

	out := []domain.VehicleCacheRecord{}
	for rows.Next() {
		rec, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListVehicles, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListVehicles, err)
	}
	return out, nil
}

func encodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeAttrs, err)
	}
	return data, nil
}

func nonNilAbsences(a []domain.VehicleAbsence) []domain.VehicleAbsence {
	if a == nil {
		return []domain.VehicleAbsence{}
	}
	return a
}

func (r *vehicleRepository) InsertVehicle(ctx context.Context, rec *domain.VehicleCacheRecord) error {
	attrs, err := encodeJSON(rec.Attributes)
	if err != nil {
		return err
	}
	absences, err := encodeJSON(nonNilAbsences(rec.Absences))
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO vehicle_cache (
			data_source, external_id, code, attributes, absences,
			status, compatible_trailer_types, equipment, location,
			next_maintenance_at, next_inspection_at, assigned_driver_id, synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		string(rec.DataSource), rec.ExternalID, rec.Code, attrs, absences,
		string(rec.Status), nonNil(rec.TrailerTypes), nonNil(rec.Equipment), rec.Location,
		rec.NextMaintenanceAt, rec.NextInspectionAt, rec.AssignedDriverID, rec.SyncedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: vehicle %s", domain.ErrDuplicateRecord, vehicleKey(rec))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertVehicle, err)
	}
	return nil
}

func vehicleKey(rec *domain.VehicleCacheRecord) string {
	if rec.Code != nil {
		return *rec.Code
	}
	if rec.ExternalID != nil {
		return fmt.Sprint(*rec.ExternalID)
	}
	return ""
}

func (r *vehicleRepository) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateVehicle, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *vehicleRepository) UpdateVehicleUpstream(ctx context.Context, id string, attrs domain.VehicleAttributes, syncedAt time.Time) error {
	data, err := encodeJSON(attrs)
	if err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE vehicle_cache SET attributes = $2, synced_at = $3, updated_at = NOW() WHERE id = $1`,
		id, data, syncedAt)
}

func (r *vehicleRepository) ModifyVehicleAbsences(ctx context.Context, code string, modify func(*domain.VehicleCacheRecord) bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := scanVehicle(tx.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicle_cache WHERE data_source = 'wincpl' AND code = $1 FOR UPDATE`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrVehicleNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetVehicle, err)
	}
	if !modify(rec) {
		return nil
	}

	data, err := encodeJSON(nonNilAbsences(rec.Absences))
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE vehicle_cache SET absences = $2, updated_at = NOW() WHERE id = $1`, rec.ID, data); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateVehicle, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}
	return nil
}

func (r *vehicleRepository) UpdateVehicleManual(ctx context.Context, id string, m domain.VehicleManual) error {
	if !isUUID(id) {
		return domain.ErrVehicleNotFound
	}
	return r.exec(ctx, `
		UPDATE vehicle_cache SET
			status = $2, compatible_trailer_types = $3, equipment = $4, location = $5,
			next_maintenance_at = $6, next_inspection_at = $7, assigned_driver_id = $8, updated_at = NOW()
		WHERE id = $1`,
		id, string(m.Status), nonNil(m.TrailerTypes), nonNil(m.Equipment), m.Location,
		m.NextMaintenanceAt, m.NextInspectionAt, m.AssignedDriverID,
	)
}

func (r *vehicleRepository) ListRentalExternalIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT external_id FROM vehicle_cache WHERE data_source = 'myrentcar' ORDER BY external_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListVehicleIDs, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListVehicleIDs, err)
	}
	return ids, nil
}

func (r *vehicleRepository) DeleteRentalVehiclesByExternalIDs(ctx context.Context, externalIDs []int64) (int64, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicle_cache WHERE data_source = 'myrentcar' AND external_id = ANY($1)`, externalIDs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteVehicles, err)
	}
	return tag.RowsAffected(), nil
}
