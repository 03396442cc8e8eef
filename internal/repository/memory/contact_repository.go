package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/repository"
)

// ContactRepository is an append-only in-memory contact store.
type ContactRepository struct {
	mu       sync.RWMutex
	contacts []domain.Contact
}

// NewContactRepository creates an empty repository.
func NewContactRepository() *ContactRepository {
	return &ContactRepository{}
}

func (r *ContactRepository) Create(_ context.Context, contact *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact.ID = uuid.NewString()
	contact.CreatedAt = time.Now().UTC()
	r.contacts = append(r.contacts, *contact)
	return nil
}

// List returns contacts newest first.
func (r *ContactRepository) List(_ context.Context) ([]domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Contact, 0, len(r.contacts))
	for i := len(r.contacts) - 1; i >= 0; i-- {
		out = append(out, r.contacts[i])
	}
	return out, nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
