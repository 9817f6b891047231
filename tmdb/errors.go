package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrTransport indicates that no response was obtained from the API
	ErrTransport = errors.New("tmdb request failed")
	// ErrInvalidMovieID indicates a non-positive movie identifier
	ErrInvalidMovieID = errors.New("invalid movie id")
)

// APIError represents an unsuccessful TMDB response
type APIError struct {
	StatusCode int
	// Code is TMDB's own status_code from the error body, 0 when absent
	Code    int
	Message string
	Body    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
