package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thdgm/urlshortener/internal/handlers"
	"github.com/thdgm/urlshortener/internal/shorturl"
)

func TestMapError(t *testing.T) {
	t.Run("maps invalid url to 400 ErrorMessage", func(t *testing.T) {
		err := handlers.MapError(shorturl.ErrInvalidURL)

		var errMsg *handlers.ErrorMessage

		require.ErrorAs(t, err, &errMsg)
		assert.Equal(t, http.StatusBadRequest, errMsg.StatusCode)
		assert.Equal(t, http.StatusBadRequest, errMsg.GetStatus())
		assert.NotEmpty(t, errMsg.Message)
	})

	t.Run("maps not found to 404 ErrorMessage", func(t *testing.T) {
		err := handlers.MapError(shorturl.ErrNotFound)

		var errMsg *handlers.ErrorMessage

		require.ErrorAs(t, err, &errMsg)
		assert.Equal(t, http.StatusNotFound, errMsg.StatusCode)
		assert.NotEmpty(t, errMsg.Message)
	})

	t.Run("maps not reachable to 400 ErrorMessageReachable", func(t *testing.T) {
		err := handlers.MapError(shorturl.ErrNotReachable)

		var reachable *handlers.ErrorMessageReachable

		require.ErrorAs(t, err, &reachable)
		assert.Equal(t, http.StatusBadRequest, reachable.StatusCode)
		assert.Equal(t, http.StatusBadRequest, reachable.GetStatus())
		assert.NotEmpty(t, reachable.ErrorText)
	})

	t.Run("maps wrapped domain errors", func(t *testing.T) {
		err := handlers.MapError(fmt.Errorf("resolving id: %w", shorturl.ErrNotFound))

		var errMsg *handlers.ErrorMessage

		require.ErrorAs(t, err, &errMsg)
		assert.Equal(t, http.StatusNotFound, errMsg.StatusCode)
	})

	t.Run("stamps a parseable RFC 3339 timestamp", func(t *testing.T) {
		err := handlers.MapError(shorturl.ErrInvalidURL)

		var errMsg *handlers.ErrorMessage

		require.ErrorAs(t, err, &errMsg)

		parsed, parseErr := time.Parse(time.RFC3339, errMsg.Timestamp)
		require.NoError(t, parseErr)
		assert.WithinDuration(t, time.Now(), parsed, time.Minute)
	})

	t.Run("maps unknown errors to a generic 500", func(t *testing.T) {
		err := handlers.MapError(errors.New("boom"))

		var statusErr huma.StatusError

		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.GetStatus())

		// The known wire shapes are reserved for the mapped kinds
		var errMsg *handlers.ErrorMessage

		assert.False(t, errors.As(err, &errMsg))
	})
}
