package handler

import (
	"net/http"
	"strings"

	"dropshop/internal/model"
	"dropshop/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler serves one of the id+name catalog aggregates.
type CatalogHandler[R, D any] struct {
	service service.NamedService[R, D]
	pager   Pager
	logger  zerolog.Logger
}

// NewCategoryHandler creates a handler for /api/categories.
func NewCategoryHandler(service service.CategoryService, pager Pager, logger zerolog.Logger) *CatalogHandler[model.CategoryRequest, model.CategoryDTO] {
	return newCatalogHandler(service, pager, "category", logger)
}

// NewBrandHandler creates a handler for /api/brands.
func NewBrandHandler(service service.BrandService, pager Pager, logger zerolog.Logger) *CatalogHandler[model.BrandRequest, model.BrandDTO] {
	return newCatalogHandler(service, pager, "brand", logger)
}

func newCatalogHandler[R, D any](service service.NamedService[R, D], pager Pager, name string, logger zerolog.Logger) *CatalogHandler[R, D] {
	return &CatalogHandler[R, D]{
		service: service,
		pager:   pager,
		logger:  logger.With().Str("handler", name).Logger(),
	}
}

// List handles GET requests on the collection, filtered by searchTerm.
func (h *CatalogHandler[R, D]) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.pager.Parse(q)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	result, err := h.service.GetPage(r.Context(), model.NameParameters{
		PageParams: page,
		SearchTerm: strings.TrimSpace(q.Get("searchTerm")),
	})
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler[R, D]) Create(w http.ResponseWriter, r *http.Request) {
	var req R
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	dto, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

func (h *CatalogHandler[R, D]) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	dto, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

func (h *CatalogHandler[R, D]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req R
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	dto, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

func (h *CatalogHandler[R, D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
