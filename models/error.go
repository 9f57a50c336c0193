package models

import (
	"errors"
	"net/http"
)

// Sentinel errors for the room core. The database and handler layers wrap
// these so the boundary can map an outcome to a wire status without string
// matching.
var (
	// ErrValidation marks a malformed request body or parameter
	ErrValidation = errors.New("invalid request")
	// ErrNameTaken marks a join collision on the normalized name
	ErrNameTaken = errors.New("name already taken")
	// ErrNotFound marks an absent participant or message
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an actor that is not the owner, or a status message
	// which no user action may touch
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated marks a request missing the sender identity header
	ErrUnauthenticated = errors.New("missing sender identity")
	// ErrStorage marks a collaborator failure the caller may retry
	ErrStorage = errors.New("storage failure")
)

// HTTPStatus maps a core error to the wire status the boundary layer writes
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNameTaken):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
