// internal/repository/postgres/enquiry_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decora-admin/internal/domain/booking"
	"decora-admin/internal/domain/pipeline"
	xerrors "decora-admin/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnquiryRepository struct {
	db *pgxpool.Pool
}

func NewEnquiryRepository(db *pgxpool.Pool) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

const enquiryColumns = `id, full_name, phone, email, city, message, service, status,
       customer_key, created_at, updated_at`

// Create inserts a new enquiry.
func (r *EnquiryRepository) Create(ctx context.Context, e *booking.Enquiry) error {
	query := `
		INSERT INTO enquiries (
			id, full_name, phone, email, city, message, service, status, customer_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		e.ID, e.FullName, e.Phone, e.Email, e.City, e.Message, e.Service, e.Status, e.CustomerKey,
	).Scan(&e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}
	return nil
}

// List retrieves enquiries newest first, optionally limited.
func (r *EnquiryRepository) List(ctx context.Context, limit int) ([]booking.Enquiry, error) {
	query := fmt.Sprintf(`SELECT %s FROM enquiries ORDER BY created_at DESC`, enquiryColumns)
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := []booking.Enquiry{}
	for rows.Next() {
		var e booking.Enquiry
		err := rows.Scan(
			&e.ID, &e.FullName, &e.Phone, &e.Email, &e.City, &e.Message, &e.Service, &e.Status,
			&e.CustomerKey, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}

// UpdateStatus performs the single-field pipeline mutation and returns
// the updated enquiry.
func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status pipeline.Status) (*booking.Enquiry, error) {
	query := fmt.Sprintf(`
		UPDATE enquiries SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING %s
	`, enquiryColumns)

	var e booking.Enquiry
	err := r.db.QueryRow(ctx, query, status, time.Now(), id).Scan(
		&e.ID, &e.FullName, &e.Phone, &e.Email, &e.City, &e.Message, &e.Service, &e.Status,
		&e.CustomerKey, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update enquiry status: %w", err)
	}
	return &e, nil
}
