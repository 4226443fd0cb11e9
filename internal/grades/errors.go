package grades

import (
	"errors"
	"net/http"

	"github.com/rama-judicial/escalafon/internal/offices"
)

// Domain errors for grading operations.
var (
	ErrNotFound          = errors.New("grade not found")
	ErrOfficialNotFound  = errors.New("official not found")
	ErrOfficeNotFound    = errors.New("office not found")
	ErrDuplicate         = errors.New("grade already exists")
	ErrInvalid           = errors.New("invalid grade request")
	ErrImmutable         = errors.New("grade inputs are frozen in the current state")
	ErrInvalidTransition = errors.New("transition not allowed")
	ErrGuardFailed       = errors.New("transition guard failed")
	ErrNotesRequired     = errors.New("return requires review notes")
	ErrUnauthorized      = errors.New("caller lacks the required capability")
)

// MapHTTPStatus maps grading domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrOfficialNotFound),
		errors.Is(err, ErrOfficeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrImmutable),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrNotesRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrGuardFailed),
		errors.Is(err, offices.ErrMissingType),
		errors.Is(err, offices.ErrMissingCapacity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
