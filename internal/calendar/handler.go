package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/internal/offices"
	"github.com/rama-judicial/escalafon/pkg/handlers"
	"github.com/rama-judicial/escalafon/pkg/routes"
)

// TypeFinder resolves office types for calendar resolution.
type TypeFinder interface {
	FindType(ctx context.Context, id uuid.UUID) (*offices.OfficeType, error)
}

// Handler exposes the resolved labor calendar over HTTP.
type Handler struct {
	types  TypeFinder
	logger *slog.Logger
}

// YearResponse is the resolved non-working calendar for a single year.
// Days are grouped by "year-month" key; weekends are implicit.
type YearResponse struct {
	Year         int              `json:"year"`
	OfficeTypeID *uuid.UUID       `json:"office_type_id,omitempty"`
	NonWorking   map[string][]int `json:"non_working"`
}

// NewHandler creates a calendar Handler backed by the given type finder.
func NewHandler(types TypeFinder, logger *slog.Logger) *Handler {
	return &Handler{
		types:  types,
		logger: logger.With("handler", "calendar"),
	}
}

// Routes returns the route group definition for calendar endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/calendar",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{year}", Handler: h.Resolve},
		},
	}
}

// Resolve returns the non-working days for a year, applying the office type
// cascade when an office_type_id query parameter is present.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRange)
		return
	}

	var officeType *offices.OfficeType
	var typeID *uuid.UUID
	if v := r.URL.Query().Get("office_type_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, offices.ErrInvalid)
			return
		}

		officeType, err = h.types.FindType(r.Context(), id)
		if err != nil {
			handlers.RespondError(w, h.logger, offices.MapHTTPStatus(err), err)
			return
		}
		typeID = &id
	}

	set := Resolve(officeType)

	nonWorking := make(map[string][]int)
	prefix := strconv.Itoa(year) + "-"
	for key, days := range set {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		list := make([]int, 0, len(days))
		for day := range days {
			list = append(list, day)
		}
		sort.Ints(list)
		nonWorking[key] = list
	}

	handlers.RespondJSON(w, http.StatusOK, YearResponse{
		Year:         year,
		OfficeTypeID: typeID,
		NonWorking:   nonWorking,
	})
}
