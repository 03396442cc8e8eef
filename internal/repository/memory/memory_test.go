package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waitlisthq/waitlist-service/internal/domain"
	"github.com/waitlisthq/waitlist-service/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestAdminRepositoryUniqueUsernameUnderConcurrency(t *testing.T) {
	repo := NewAdminRepository()
	ctx := context.Background()

	var created, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &domain.Admin{Username: "root", PasswordHash: "h"})
			switch err {
			case nil:
				created.Add(1)
			case repository.ErrConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(15), conflicts.Load())
}

func TestAdminRepositoryLifecycle(t *testing.T) {
	repo := NewAdminRepository()
	ctx := context.Background()

	admin := &domain.Admin{Username: "alice", PasswordHash: "hash-1"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NotEmpty(t, admin.ID)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byName.ID)

	updated, err := repo.Update(ctx, admin.ID, domain.AdminUpdate{Username: strPtr("alicia")})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, "hash-1", updated.PasswordHash)

	_, err = repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &domain.Admin{Username: "bob", PasswordHash: "h"}))
	_, err = repo.Update(ctx, admin.ID, domain.AdminUpdate{Username: strPtr("bob")})
	assert.ErrorIs(t, err, repository.ErrConflict)

	require.NoError(t, repo.Delete(ctx, admin.ID))
	assert.ErrorIs(t, repo.Delete(ctx, admin.ID), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, admin.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(ctx, admin.ID, domain.AdminUpdate{PasswordHash: strPtr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWaitlistRepositoryUniqueEmail(t *testing.T) {
	repo := NewWaitlistRepository()
	ctx := context.Background()

	first := &domain.WaitlistEntry{Email: "a@x.com"}
	require.NoError(t, repo.Create(ctx, first))
	assert.ErrorIs(t, repo.Create(ctx, &domain.WaitlistEntry{Email: "a@x.com"}), repository.ErrConflict)

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	require.NoError(t, repo.Create(ctx, &domain.WaitlistEntry{Email: "b@x.com"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b@x.com", list[0].Email)
}

func TestContactRepositoryListNewestFirst(t *testing.T) {
	repo := NewContactRepository()
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, repo.Create(ctx, &domain.Contact{Name: "a", Email: "a@x.com", Message: "1"}))
	require.NoError(t, repo.Create(ctx, &domain.Contact{Name: "b", Email: "b@x.com", Message: "2"}))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Name)
}
