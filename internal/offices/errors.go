package offices

import (
	"errors"
	"net/http"
)

// Domain errors for office operations.
var (
	ErrNotFound        = errors.New("office not found")
	ErrTypeNotFound    = errors.New("office type not found")
	ErrDuplicate       = errors.New("office already exists")
	ErrInvalid         = errors.New("invalid office data")
	ErrMissingType     = errors.New("office has no office type assigned")
	ErrMissingCapacity = errors.New("office type has no capacity for the period")
)

// MapHTTPStatus maps office domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTypeNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrMissingType) || errors.Is(err, ErrMissingCapacity) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
