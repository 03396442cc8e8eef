package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/waitlisthq/waitlist-service/internal/domain"
)

// AdminRepository is the directory of admins keyed by unique username.
type AdminRepository interface {
	// Create inserts admin and fills its ID and timestamps. ErrConflict when the username is taken.
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	// Update applies a partial update. ErrNotFound, ErrConflict.
	Update(ctx context.Context, id string, update domain.AdminUpdate) (*domain.Admin, error)
	// Delete removes the admin permanently. ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id::text, username, password_hash, created_at, updated_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (username, password_hash)
        VALUES ($1, $2)
        RETURNING id::text, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		admin.Username,
		admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	return translate(err)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	const query = `SELECT ` + adminColumns + ` FROM admins WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admins WHERE username=$1`
	return r.scanOne(ctx, query, username)
}

func (r *adminRepository) Update(ctx context.Context, id string, update domain.AdminUpdate) (*domain.Admin, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	const query = `
        UPDATE admins SET
            username = COALESCE($2, username),
            password_hash = COALESCE($3, password_hash),
            updated_at = NOW()
        WHERE id=$1
        RETURNING ` + adminColumns

	return r.scanOne(ctx, query, id, update.Username, update.PasswordHash)
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *adminRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}
