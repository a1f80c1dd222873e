package adminapi

import (
	"errors"
	"fmt"
	"net/http"
)

// genericMessage is shown when the service returns no usable error body.
const genericMessage = "Operation failed"

// Error is a non-2xx response from the admin API, carrying the
// human-readable message the service returned (or a generic fallback).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("admin api: %s (status %d)", e.Message, e.Status)
}

// Unauthorized reports whether the remote service rejected the token.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsUnauthorized classifies an error as an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// UserMessage extracts the display message for a failed call: the server's
// own wording for API errors, the fallback for transport failures.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != genericMessage {
		return apiErr.Message
	}
	return fallback
}
