package grades

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/handlers"
	"github.com/rama-judicial/escalafon/pkg/middleware"
	"github.com/rama-judicial/escalafon/pkg/pagination"
	"github.com/rama-judicial/escalafon/pkg/routes"
)

// Handler provides HTTP endpoints for grading operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// ComputeRequest identifies the grade to rebuild.
type ComputeRequest struct {
	OfficialID uuid.UUID `json:"official_id"`
	OfficeID   uuid.UUID `json:"office_id"`
	Period     int       `json:"period"`
}

// TransitionRequest carries a workflow action and its optional notes.
type TransitionRequest struct {
	Action Action `json:"action"`
	Notes  string `json:"notes"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "grades"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for grading endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/grades",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/compute", Handler: h.Compute},
			{Method: "POST", Pattern: "/recompute-office", Handler: h.RecomputeOffice},
			{Method: "POST", Pattern: "/{id}/transition", Handler: h.Transition},
			{Method: "GET", Pattern: "/{id}/export", Handler: h.Export},
		},
	}
}

// List returns a paginated list of grades with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a grade with its full breakdown by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	g, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, g)
}

// Compute rebuilds a grade for the official and period in the JSON body.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if req.OfficialID == uuid.Nil || req.Period <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	g, err := h.sys.Recompute(r.Context(), req.OfficialID, req.Period)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, g)
}

// RecomputeOffice rebuilds the grades of every official with statistics at
// the office in the JSON body.
func (h *Handler) RecomputeOffice(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if req.OfficeID == uuid.Nil || req.Period <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if err := h.sys.RecomputeOffice(r.Context(), req.OfficeID, req.Period); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Transition applies a workflow action from the JSON body on behalf of the
// authenticated caller.
func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	actor, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, fmt.Errorf("missing caller identity"))
		return
	}

	g, err := h.sys.Transition(r.Context(), id, req.Action, actor, req.Notes)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, g)
}

// Export streams the grade's consolidated rows as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	data, err := h.sys.ExportCSV(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="grade-%s.csv"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
