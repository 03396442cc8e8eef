package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/waitlisthq/waitlist-service/internal/domain"
)

// WaitlistRepository stores waitlist entries, unique by email.
type WaitlistRepository interface {
	// Create inserts entry. ErrConflict when the email is already listed.
	Create(ctx context.Context, entry *domain.WaitlistEntry) error
	GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	List(ctx context.Context) ([]domain.WaitlistEntry, error)
}

type waitlistRepository struct {
	pool *pgxpool.Pool
}

// NewWaitlistRepository returns a Postgres-backed implementation.
func NewWaitlistRepository(pool *pgxpool.Pool) WaitlistRepository {
	return &waitlistRepository{pool: pool}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	const query = `
        INSERT INTO waitlist (email)
        VALUES ($1)
        RETURNING id::text, created_at`

	err := r.pool.QueryRow(ctx, query, entry.Email).Scan(&entry.ID, &entry.CreatedAt)
	return translate(err)
}

func (r *waitlistRepository) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	const query = `SELECT id::text, email, created_at FROM waitlist WHERE email=$1`

	var entry domain.WaitlistEntry
	if err := r.pool.QueryRow(ctx, query, email).Scan(&entry.ID, &entry.Email, &entry.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *waitlistRepository) List(ctx context.Context) ([]domain.WaitlistEntry, error) {
	const query = `SELECT id::text, email, created_at FROM waitlist ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	entries := []domain.WaitlistEntry{}
	for rows.Next() {
		var e domain.WaitlistEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
