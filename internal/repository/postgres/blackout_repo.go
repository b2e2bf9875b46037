// internal/repository/postgres/blackout_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"decora-admin/internal/domain/blackout"
	xerrors "decora-admin/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BlackoutRepository struct {
	db *pgxpool.Pool
}

func NewBlackoutRepository(db *pgxpool.Pool) *BlackoutRepository {
	return &BlackoutRepository{db: db}
}

// Create inserts a new blackout window. Windows are immutable once
// created, so there is no Update.
func (r *BlackoutRepository) Create(ctx context.Context, w *blackout.Window) error {
	query := `
		INSERT INTO blackouts (id, start_time, end_time, reason, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, w.ID, w.StartTime, w.EndTime, w.Reason, w.CreatedBy).
		Scan(&w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create blackout: %w", err)
	}
	return nil
}

// Delete removes a blackout window by identifier.
func (r *BlackoutRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM blackouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blackout: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ListAll retrieves every blackout window, soonest first.
func (r *BlackoutRepository) ListAll(ctx context.Context) ([]blackout.Window, error) {
	return r.list(ctx, `SELECT id, start_time, end_time, reason, created_by, created_at
		FROM blackouts ORDER BY start_time ASC`)
}

// ListOverlapping retrieves windows whose interval touches [from, to].
// The closed-interval test matches the availability engine's overlap
// semantics, so a multi-day window is returned for every day it spans.
func (r *BlackoutRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]blackout.Window, error) {
	return r.list(ctx, `SELECT id, start_time, end_time, reason, created_by, created_at
		FROM blackouts
		WHERE start_time <= $2 AND end_time >= $1
		ORDER BY start_time ASC`, from, to)
}

func (r *BlackoutRepository) list(ctx context.Context, query string, args ...interface{}) ([]blackout.Window, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list blackouts: %w", err)
	}
	defer rows.Close()

	windows := []blackout.Window{}
	for rows.Next() {
		var w blackout.Window
		if err := rows.Scan(&w.ID, &w.StartTime, &w.EndTime, &w.Reason, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blackout: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
