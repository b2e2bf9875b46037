// internal/repository/postgres/note_repo.go
package postgres

import (
	"context"
	"fmt"

	"decora-admin/internal/domain/customer"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type NoteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a customer note with its attachment URLs.
func (r *NoteRepository) Create(ctx context.Context, n *customer.Note) error {
	query := `
		INSERT INTO customer_notes (id, customer_key, author_email, body, images)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		n.ID, n.CustomerKey, n.AuthorEmail, n.Body, pq.Array(n.Images),
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// ListByCustomer retrieves a customer's notes, newest first. The key is
// the derived identity key, so notes written from a phone-only record
// surface when viewing the same customer's e-mail-only record.
func (r *NoteRepository) ListByCustomer(ctx context.Context, key customer.Key) ([]customer.Note, error) {
	query := `
		SELECT id, customer_key, author_email, body, images, created_at
		FROM customer_notes
		WHERE customer_key = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []customer.Note{}
	for rows.Next() {
		var n customer.Note
		var images pq.StringArray
		if err := rows.Scan(&n.ID, &n.CustomerKey, &n.AuthorEmail, &n.Body, &images, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.Images = []string(images)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
