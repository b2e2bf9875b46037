// internal/repository/postgres/visit_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decora-admin/internal/domain/booking"
	"decora-admin/internal/domain/pipeline"
	xerrors "decora-admin/internal/pkg/errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VisitRepository struct {
	db *pgxpool.Pool
}

func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

const visitColumns = `id, start_time, end_time, full_name, phone, email, mode,
       address_line, city, postal_code, message, service, status, customer_key,
       created_at, updated_at`

// Create inserts a new visit.
func (r *VisitRepository) Create(ctx context.Context, v *booking.Visit) error {
	query := `
		INSERT INTO visits (
			id, start_time, end_time, full_name, phone, email, mode,
			address_line, city, postal_code, message, service, status, customer_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.ID, v.StartTime, v.EndTime, v.FullName, v.Phone, v.Email, v.Mode,
		v.AddressLine, v.City, v.PostalCode, v.Message, v.Service, v.Status, v.CustomerKey,
	).Scan(&v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

// FindByID retrieves a visit by ID.
func (r *VisitRepository) FindByID(ctx context.Context, id string) (*booking.Visit, error) {
	query := fmt.Sprintf(`SELECT %s FROM visits WHERE id = $1`, visitColumns)

	var v booking.Visit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.StartTime, &v.EndTime, &v.FullName, &v.Phone, &v.Email, &v.Mode,
		&v.AddressLine, &v.City, &v.PostalCode, &v.Message, &v.Service, &v.Status, &v.CustomerKey,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find visit: %w", err)
	}
	return &v, nil
}

// List retrieves visits matching the filters, ordered by start time.
func (r *VisitRepository) List(ctx context.Context, filters *booking.ListFilters) ([]booking.Visit, error) {
	builder := psql.Select(visitColumns).
		From("visits").
		OrderBy("start_time ASC")

	if filters != nil {
		if filters.Status != "" {
			builder = builder.Where(squirrel.Eq{"status": filters.Status})
		}
		if !filters.From.IsZero() {
			builder = builder.Where(squirrel.GtOrEq{"start_time": filters.From})
		}
		if !filters.To.IsZero() {
			builder = builder.Where(squirrel.LtOrEq{"start_time": filters.To})
		}
		if filters.Search != "" {
			like := "%" + filters.Search + "%"
			builder = builder.Where(squirrel.Or{
				squirrel.ILike{"full_name": like},
				squirrel.ILike{"phone": like},
				squirrel.ILike{"email": like},
			})
		}
		if filters.Limit > 0 {
			builder = builder.Limit(uint64(filters.Limit))
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build visit query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// ListBetween retrieves visits whose start falls inside [from, to].
func (r *VisitRepository) ListBetween(ctx context.Context, from, to time.Time) ([]booking.Visit, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM visits
		WHERE start_time >= $1 AND start_time <= $2
		ORDER BY start_time ASC
	`, visitColumns)

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// Update overwrites a visit's editable fields.
func (r *VisitRepository) Update(ctx context.Context, v *booking.Visit) error {
	query := `
		UPDATE visits
		SET start_time = $1, end_time = $2, full_name = $3, phone = $4, email = $5,
		    mode = $6, address_line = $7, city = $8, postal_code = $9,
		    message = $10, service = $11, updated_at = $12
		WHERE id = $13
	`

	result, err := r.db.Exec(
		ctx, query,
		v.StartTime, v.EndTime, v.FullName, v.Phone, v.Email,
		v.Mode, v.AddressLine, v.City, v.PostalCode,
		v.Message, v.Service, time.Now(), v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus performs the single-field pipeline mutation and returns
// the updated visit so callers can derive its customer key.
func (r *VisitRepository) UpdateStatus(ctx context.Context, id string, status pipeline.Status) (*booking.Visit, error) {
	query := fmt.Sprintf(`
		UPDATE visits SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING %s
	`, visitColumns)

	var v booking.Visit
	err := r.db.QueryRow(ctx, query, status, time.Now(), id).Scan(
		&v.ID, &v.StartTime, &v.EndTime, &v.FullName, &v.Phone, &v.Email, &v.Mode,
		&v.AddressLine, &v.City, &v.PostalCode, &v.Message, &v.Service, &v.Status, &v.CustomerKey,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update visit status: %w", err)
	}
	return &v, nil
}

func scanVisits(rows pgx.Rows) ([]booking.Visit, error) {
	visits := []booking.Visit{}
	for rows.Next() {
		var v booking.Visit
		err := rows.Scan(
			&v.ID, &v.StartTime, &v.EndTime, &v.FullName, &v.Phone, &v.Email, &v.Mode,
			&v.AddressLine, &v.City, &v.PostalCode, &v.Message, &v.Service, &v.Status, &v.CustomerKey,
			&v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
