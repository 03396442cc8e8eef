// Package memory provides in-process repositories for tests and database-less development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/repository"
)

// AdminRepository keeps admins in a map guarded by a mutex. The username index is
// checked and written under the same lock, mirroring a unique index.
type AdminRepository struct {
	mu         sync.RWMutex
	byID       map[string]domain.Admin
	byUsername map[string]string
}

// NewAdminRepository creates an empty repository.
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		byID:       make(map[string]domain.Admin),
		byUsername: make(map[string]string),
	}
}

func (r *AdminRepository) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[admin.Username]; taken {
		return repository.ErrConflict
	}

	now := time.Now().UTC()
	admin.ID = uuid.NewString()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	r.byID[admin.ID] = *admin
	r.byUsername[admin.Username] = admin.ID
	return nil
}

func (r *AdminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &admin, nil
}

func (r *AdminRepository) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	admin := r.byID[id]
	return &admin, nil
}

func (r *AdminRepository) Update(_ context.Context, id string, update domain.AdminUpdate) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if update.Username != nil && *update.Username != admin.Username {
		if _, taken := r.byUsername[*update.Username]; taken {
			return nil, repository.ErrConflict
		}
		delete(r.byUsername, admin.Username)
		admin.Username = *update.Username
		r.byUsername[admin.Username] = id
	}
	if update.PasswordHash != nil {
		admin.PasswordHash = *update.PasswordHash
	}
	admin.UpdatedAt = time.Now().UTC()

	r.byID[id] = admin
	return &admin, nil
}

func (r *AdminRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byUsername, admin.Username)
	return nil
}

var _ repository.AdminRepository = (*AdminRepository)(nil)
