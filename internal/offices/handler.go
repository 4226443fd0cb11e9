package offices

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/rama-judicial/escalafon/pkg/handlers"
	"github.com/rama-judicial/escalafon/pkg/pagination"
	"github.com/rama-judicial/escalafon/pkg/routes"
)

// Handler provides HTTP endpoints for office and office type operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// SetCapacityRequest carries the capacity upsert payload.
type SetCapacityRequest struct {
	Period      int `json:"period"`
	MaxCapacity int `json:"max_capacity"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "offices"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for office endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/offices",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find},
					{Method: "POST", Pattern: "", Handler: h.Create},
					{Method: "POST", Pattern: "/search", Handler: h.Search},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
				},
			},
			{
				Prefix: "/office-types",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListTypes},
					{Method: "GET", Pattern: "/{id}", Handler: h.FindType},
					{Method: "POST", Pattern: "", Handler: h.CreateType},
					{Method: "GET", Pattern: "/{id}/capacities", Handler: h.Capacity},
					{Method: "PUT", Pattern: "/{id}/capacities", Handler: h.SetCapacity},
				},
			},
		},
	}
}

// List returns a paginated list of offices with optional query parameter filters.
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

// Find returns a single office by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	office, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, office)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching offices.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create registers a new office from a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	office, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, office)
}

// Delete removes an office by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTypes returns every registered office type.
func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.sys.ListTypes(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, types)
}

// FindType returns a single office type by its UUID path parameter.
func (h *Handler) FindType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	t, err := h.sys.FindType(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// CreateType registers a new office type from a JSON body.
func (h *Handler) CreateType(w http.ResponseWriter, r *http.Request) {
	var cmd CreateTypeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	t, err := h.sys.CreateType(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, t)
}

// Capacity returns the configured capacity for an office type and period query parameter.
func (h *Handler) Capacity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	period, err := strconv.Atoi(r.URL.Query().Get("period"))
	if err != nil || period <= 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	capacity, err := h.sys.Capacity(r.Context(), id, period)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Capacity{
		OfficeTypeID: id,
		Period:       period,
		MaxCapacity:  capacity,
	})
}

// SetCapacity upserts the capacity for an office type from a JSON body.
func (h *Handler) SetCapacity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	var req SetCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalid)
		return
	}

	if err := h.sys.SetCapacity(r.Context(), id, req.Period, req.MaxCapacity); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Capacity{
		OfficeTypeID: id,
		Period:       req.Period,
		MaxCapacity:  req.MaxCapacity,
	})
}
