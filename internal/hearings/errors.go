package hearings

import (
	"errors"
	"net/http"
)

// Domain errors for hearing statistics operations.
var (
	ErrNotFound    = errors.New("hearing record not found")
	ErrDuplicate   = errors.New("hearing record already exists")
	ErrInvalid     = errors.New("invalid hearing record")
	ErrUnbalanced  = errors.New("hearing outcomes do not sum to scheduled count")
	ErrGradeLocked = errors.New("grade for the period is not editable")
)

// MapHTTPStatus maps hearing domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrGradeLocked) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) || errors.Is(err, ErrUnbalanced) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
