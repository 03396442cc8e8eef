package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "admins_username_key"}
	assert.ErrorIs(t, translate(unique), ErrConflict)

	other := &pgconn.PgError{Code: "23502"}
	assert.Equal(t, error(other), translate(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, translate(plain))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("7f1f6c1e-8a4e-4a57-9d3e-2b4a5f0c9e11"))
	assert.False(t, validID("42"))
	assert.False(t, validID(""))
}
