package handler

import (
	"net/http"
	"strings"

	"dropshop/internal/model"
	"dropshop/internal/service"

	"github.com/rs/zerolog"
)

// DropshipperHandler handles dropshipper-related HTTP requests. The account
// id always comes from the {userId} path segment.
type DropshipperHandler struct {
	service service.DropshipperService
	pager   Pager
	logger  zerolog.Logger
}

// NewDropshipperHandler creates a new dropshipper handler.
func NewDropshipperHandler(service service.DropshipperService, pager Pager, logger zerolog.Logger) *DropshipperHandler {
	return &DropshipperHandler{
		service: service,
		pager:   pager,
		logger:  logger.With().Str("handler", "dropshipper").Logger(),
	}
}

// List handles GET /api/dropshippers requests.
func (h *DropshipperHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.pager.Parse(q)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	active, err := queryBool(q, "isActive")
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	result, err := h.service.GetPage(r.Context(), model.DropshipperParameters{
		PageParams: page,
		SearchTerm: strings.TrimSpace(q.Get("searchTerm")),
		IsActive:   active,
	})
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/dropshippers/{userId} requests.
func (h *DropshipperHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.DropshipperDTO
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	dto, err := h.service.Create(r.Context(), r.PathValue("userId"), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// GetByID handles GET /api/dropshippers/{userId} requests.
func (h *DropshipperHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	dto, err := h.service.GetByID(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// Update handles PUT /api/dropshippers/{userId} requests.
func (h *DropshipperHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.DropshipperDTO
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	dto, err := h.service.Update(r.Context(), r.PathValue("userId"), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// Delete handles DELETE /api/dropshippers/{userId} requests.
func (h *DropshipperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("userId")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
