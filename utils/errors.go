// utils/errors.go - Typed error taxonomy shared by services and handlers
package utils

import (
	"errors"
	"net/http"
)

// APIError carries an HTTP-equivalent code with a user-facing message.
// Services return these; the fiber error handler translates them exactly
// once at the boundary.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Bad builds a ValidationError (400): malformed input, illegal state
// transition, capacity exceeded, duplicate unique key.
func Bad(message string) error {
	return &APIError{Code: http.StatusBadRequest, Message: message}
}

// NotFound builds a NotFoundError (404): the referenced entity is missing.
func NotFound(message string) error {
	return &APIError{Code: http.StatusNotFound, Message: message}
}

// Unauthorized builds an UnauthorizedError (403): the actor lacks the role
// or ownership required for the action.
func Unauthorized(message string) error {
	return &APIError{Code: http.StatusForbidden, Message: message}
}

// ServerErr builds a ServerError (500): unexpected persistence or I/O
// failure, missing singleton configuration.
func ServerErr(message string) error {
	return &APIError{Code: http.StatusInternalServerError, Message: message}
}

// StatusOf extracts the HTTP status for an error, defaulting to 500.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a 400-class error.
func IsValidation(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}

// IsNotFound reports whether err is a 404-class error.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
