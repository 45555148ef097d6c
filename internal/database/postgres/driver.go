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

const driverColumns = `
	id, external_id, first_name, last_name, full_name, email, phone,
	address_line, postal_code, city, country, team_id, team_name, custom_fields,
	matricule, permits, certifications, agency, zone, status, indisponibilite_raison,
	synced_at, created_at, updated_at`

type driverRepository struct {
	db *pgxpool.Pool
}

// NewDriverRepository creates a PostgreSQL driver cache
func NewDriverRepository(db *pgxpool.Pool) repository.DriverCache {
	return &driverRepository{db: db}
}

func scanDriver(row pgx.Row) (*domain.DriverCacheRecord, error) {
	var (
		rec    domain.DriverCacheRecord
		custom []byte
	)
	err := row.Scan(
		&rec.ID, &rec.ExternalID, &rec.FirstName, &rec.LastName, &rec.FullName, &rec.Email, &rec.Phone,
		&rec.AddressLine, &rec.PostalCode, &rec.City, &rec.Country, &rec.TeamID, &rec.TeamName, &custom,
		&rec.Matricule, &rec.Permits, &rec.Certifications, &rec.Agency, &rec.Zone, &rec.Status, &rec.UnavailabilityNote,
		&rec.SyncedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(custom, &rec.CustomFields); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeCustom, err)
	}
	return &rec, nil
}

func (r *driverRepository) getOne(ctx context.Context, where string, arg any) (*domain.DriverCacheRecord, error) {
	rec, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM driver_cache WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDriver, err)
	}
	return rec, nil
}

func (r *driverRepository) GetDriverByID(ctx context.Context, id string) (*domain.DriverCacheRecord, error) {
	if !isUUID(id) {
		return nil, domain.ErrDriverNotFound
	}
	return r.getOne(ctx, "id = $1", id)
}

func (r *driverRepository) GetDriverByExternalID(ctx context.Context, externalID int) (*domain.DriverCacheRecord, error) {
	return r.getOne(ctx, "external_id = $1", externalID)
}

func (r *driverRepository) ListDrivers(ctx context.Context, f domain.DriverFilter) ([]domain.DriverCacheRecord, error) {
	q := newQuery(`SELECT ` + driverColumns + ` FROM driver_cache`)
	if f.Status != "" {
		q.where("status = $%d", string(f.Status))
	}
	if f.TeamID != nil {
		q.where("team_id = $%d", *f.TeamID)
	}
	if f.Search != "" {
		q.where("(full_name || ' ' || matricule) ILIKE $%d", likePattern(f.Search))
	}
	q.raw(" ORDER BY last_name, first_name, external_id")
	q.page(f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDrivers, err)
	}
	defer rows.Close()

	out := []domain.DriverCacheRecord{}
	for rows.Next() {
		rec, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDrivers, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDrivers, err)
	}
	return out, nil
}

func encodeCustom(fields map[string]string) ([]byte, error) {
	if fields == nil {
		fields = map[string]string{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeCustom, err)
	}
	return data, nil
}

func (r *driverRepository) InsertDriver(ctx context.Context, rec *domain.DriverCacheRecord) error {
	custom, err := encodeCustom(rec.CustomFields)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO driver_cache (
			external_id, first_name, last_name, full_name, email, phone,
			address_line, postal_code, city, country, team_id, team_name, custom_fields,
			matricule, permits, certifications, agency, zone, status, indisponibilite_raison, synced_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at`,
		rec.ExternalID, rec.FirstName, rec.LastName, rec.FullName, rec.Email, rec.Phone,
		rec.AddressLine, rec.PostalCode, rec.City, rec.Country, rec.TeamID, rec.TeamName, custom,
		rec.Matricule, nonNil(rec.Permits), nonNil(rec.Certifications), rec.Agency, rec.Zone,
		string(rec.Status), rec.UnavailabilityNote, rec.SyncedAt,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: driver %d", domain.ErrDuplicateRecord, rec.ExternalID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertDriver, err)
	}
	return nil
}

// UpdateDriverUpstream overwrites every upstream-owned column. The status
// pair is written only when avail is set.
func (r *driverRepository) UpdateDriverUpstream(ctx context.Context, id string, up domain.DriverUpstream, avail *domain.AvailabilityChange, syncedAt time.Time) error {
	custom, err := encodeCustom(up.CustomFields)
	if err != nil {
		return err
	}
	var status, reason *string
	if avail != nil {
		s := string(avail.Status)
		status, reason = &s, &avail.Reason
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE driver_cache SET
			external_id = $2, first_name = $3, last_name = $4, full_name = $5, email = $6, phone = $7,
			address_line = $8, postal_code = $9, city = $10, country = $11, team_id = $12, team_name = $13,
			custom_fields = $14,
			status = COALESCE($15, status),
			indisponibilite_raison = COALESCE($16, indisponibilite_raison),
			synced_at = $17, updated_at = NOW()
		WHERE id = $1`,
		id, up.ExternalID, up.FirstName, up.LastName, up.FullName, up.Email, up.Phone,
		up.AddressLine, up.PostalCode, up.City, up.Country, up.TeamID, up.TeamName,
		custom, status, reason, syncedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateDriver, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

func (r *driverRepository) UpdateDriverManual(ctx context.Context, id string, m domain.DriverManual) error {
	if !isUUID(id) {
		return domain.ErrDriverNotFound
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE driver_cache SET
			matricule = $2, permits = $3, certifications = $4, agency = $5, zone = $6,
			status = $7, indisponibilite_raison = $8, updated_at = NOW()
		WHERE id = $1`,
		id, m.Matricule, nonNil(m.Permits), nonNil(m.Certifications), m.Agency, m.Zone,
		string(m.Status), m.UnavailabilityNote,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateDriver, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

func (r *driverRepository) ListDriverExternalIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT external_id FROM driver_cache ORDER BY external_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDriverIDs, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDriverIDs, err)
	}
	return ids, nil
}

func (r *driverRepository) DeleteDriversByExternalIDs(ctx context.Context, externalIDs []int) (int64, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM driver_cache WHERE external_id = ANY($1)`, externalIDs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteDrivers, err)
	}
	return tag.RowsAffected(), nil
}
