package records

import (
	"errors"
	"net/http"
)

// Domain errors for statistics row operations.
var (
	ErrNotFound    = errors.New("statistics record not found")
	ErrDuplicate   = errors.New("statistics record already exists")
	ErrInvalid     = errors.New("invalid statistics record")
	ErrGradeLocked = errors.New("grade for the period is not editable")
)

// MapHTTPStatus maps record domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrGradeLocked) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
