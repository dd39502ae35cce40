package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrTokenExpired      = fmt.Errorf("%w: token expired", ErrNotAuthenticated)
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrServer            = errors.New("server error")
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx response. Message is taken from the response body
// when the backend provides one.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServer:
		return e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// IsAuthError reports whether err means the caller must re-authenticate.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrUnauthorized)
}
