package officials

import (
	"errors"
	"net/http"
)

// Domain errors for official operations.
var (
	ErrNotFound      = errors.New("official not found")
	ErrLeaveNotFound = errors.New("leave period not found")
	ErrDuplicate     = errors.New("official already exists")
	ErrInvalid       = errors.New("invalid official data")
	ErrGradeLocked   = errors.New("grade for the period is not editable")
)

// MapHTTPStatus maps official domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLeaveNotFound) {
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
