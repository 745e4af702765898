package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("passes through domain errors", func(t *testing.T) {
		err := NewConflict("user already exists", nil)
		domainErr := ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		domainErr := ToDomainError(pgx.ErrNoRows)
		require.NotNil(t, domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	})

	t.Run("unknown errors collapse to internal", func(t *testing.T) {
		domainErr := ToDomainError(errors.New("connection reset"))
		require.NotNil(t, domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
		assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
		assert.Equal(t, "internal server error", domainErr.Message)
	})
}
