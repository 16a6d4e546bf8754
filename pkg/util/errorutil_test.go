package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("passes DomainError through", func(t *testing.T) {
		err := NewForbidden("no access")
		got := ToDomainError(err)
		require.NotNil(t, got)
		assert.Equal(t, "FORBIDDEN", got.Code)
		assert.Equal(t, http.StatusForbidden, got.HTTPStatus)
	})

	t.Run("unwraps wrapped DomainError", func(t *testing.T) {
		err := fmt.Errorf("loading report: %w", NewUnauthorized("token revoked"))
		got := ToDomainError(err)
		require.NotNil(t, got)
		assert.Equal(t, "UNAUTHORIZED", got.Code)
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		got := ToDomainError(pgx.ErrNoRows)
		require.NotNil(t, got)
		assert.Equal(t, "NOT_FOUND", got.Code)
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		got := ToDomainError(errors.New("connection reset"))
		require.NotNil(t, got)
		assert.Equal(t, "INTERNAL_ERROR", got.Code)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
	})
}

func TestBusinessRuleError(t *testing.T) {
	got := ToDomainError(NewBusinessRule("laporan sudah diproses"))
	require.NotNil(t, got)
	assert.Equal(t, "BUSINESS_RULE", got.Code)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	err := NewValidationError("Data yang dikirim tidak valid.", map[string]any{"title": "Judul laporan wajib diisi."})
	got := ToDomainError(err)
	require.NotNil(t, got)
	assert.Equal(t, "VALIDATION_FAILED", got.Code)
	assert.Equal(t, "Judul laporan wajib diisi.", got.Details["title"])
}
