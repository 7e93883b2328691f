package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/thdgm/urlshortener/internal/shorturl"
)

// ErrorMessage is the wire shape for invalid-input and not-found failures.
type ErrorMessage struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Timestamp  string `json:"timestamp"`
}

func (e *ErrorMessage) Error() string {
	return e.Message
}

func (e *ErrorMessage) GetStatus() int {
	return e.StatusCode
}

// ErrorMessageReachable is the wire shape for reachability failures. It
// mirrors ErrorMessage but reports the text under "error" instead of
// "message"; clients depend on the distinct field name.
type ErrorMessageReachable struct {
	StatusCode int    `json:"statusCode"`
	ErrorText  string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp"`
}

func (e *ErrorMessageReachable) Error() string {
	return e.ErrorText
}

func (e *ErrorMessageReachable) GetStatus() int {
	return e.StatusCode
}

// MapError translates domain errors into HTTP error responses. Every
// endpoint returns collaborator errors through this single table; errors
// outside it become a generic 500.
func MapError(err error) error {
	timestamp := time.Now().Format(time.RFC3339)

	switch {
	case errors.Is(err, shorturl.ErrInvalidURL):
		return &ErrorMessage{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
			Timestamp:  timestamp,
		}
	case errors.Is(err, shorturl.ErrNotFound):
		return &ErrorMessage{
			StatusCode: http.StatusNotFound,
			Message:    err.Error(),
			Timestamp:  timestamp,
		}
	case errors.Is(err, shorturl.ErrNotReachable):
		return &ErrorMessageReachable{
			StatusCode: http.StatusBadRequest,
			ErrorText:  err.Error(),
			Timestamp:  timestamp,
		}
	default:
		return huma.Error500InternalServerError("internal server error")
	}
}
