package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/repository"
)

// WaitlistRepository is an in-memory waitlist with a unique email index.
type WaitlistRepository struct {
	mu      sync.RWMutex
	entries []domain.WaitlistEntry
	byEmail map[string]int
}

// NewWaitlistRepository creates an empty repository.
func NewWaitlistRepository() *WaitlistRepository {
	return &WaitlistRepository{byEmail: make(map[string]int)}
}

func (r *WaitlistRepository) Create(_ context.Context, entry *domain.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[entry.Email]; exists {
		return repository.ErrConflict
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	r.byEmail[entry.Email] = len(r.entries)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *WaitlistRepository) GetByEmail(_ context.Context, email string) (*domain.WaitlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	entry := r.entries[idx]
	return &entry, nil
}

// List returns entries newest first.
func (r *WaitlistRepository) List(_ context.Context) ([]domain.WaitlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.WaitlistEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

var _ repository.WaitlistRepository = (*WaitlistRepository)(nil)
