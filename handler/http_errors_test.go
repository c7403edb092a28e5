package handler_test

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/routekit/handler"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("implements error with the machine key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "not_found", handler.ErrNotFound.Error())
		assert.Equal(t, http.StatusNotFound, handler.ErrNotFound.StatusCode())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("loading profile: %w", handler.ErrForbidden)

		var httpErr handler.HTTPError
		require.ErrorAs(t, wrapped, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("custom errors carry their code", func(t *testing.T) {
		t.Parallel()
		err := handler.NewHTTPError(http.StatusPaymentRequired, "subscription_expired")
		assert.Equal(t, http.StatusPaymentRequired, err.Code)
		assert.Equal(t, "subscription_expired", err.Error())
	})

	t.Run("distinct values compare distinct", func(t *testing.T) {
		t.Parallel()
		assert.False(t, errors.Is(handler.ErrNotFound, handler.ErrConflict))
		assert.True(t, errors.Is(handler.ErrConflict, handler.ErrConflict))
	})
}

func TestClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, handler.IsClientError(http.StatusBadRequest))
	assert.True(t, handler.IsClientError(http.StatusTooManyRequests))
	assert.False(t, handler.IsClientError(http.StatusInternalServerError))
	assert.False(t, handler.IsClientError(http.StatusOK))

	assert.True(t, handler.IsServerError(http.StatusBadGateway))
	assert.False(t, handler.IsServerError(http.StatusNotFound))

	assert.Equal(t, slog.LevelWarn, handler.LogLevel(http.StatusNotFound))
	assert.Equal(t, slog.LevelError, handler.LogLevel(http.StatusInternalServerError))
	assert.Equal(t, slog.LevelInfo, handler.LogLevel(http.StatusOK))
}
