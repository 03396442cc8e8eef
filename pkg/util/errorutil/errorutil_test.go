package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("signup: %w", NewConflict("Admin already exists", nil))

	de := ToDomainError(wrapped)
	assert.Equal(t, "CONFLICT", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "Admin already exists", de.Message)
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset by peer")

	de := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestFromStatus(t *testing.T) {
	de := FromStatus(http.StatusNotFound, "Cannot GET /nope")
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "Cannot GET /nope", de.Message)

	de = FromStatus(http.StatusServiceUnavailable, "down")
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "internal server error", de.Message)
}
