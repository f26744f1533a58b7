package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"dropshop/internal/model"
	"dropshop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// imagesField is the multipart field carrying product image files.
const imagesField = "images"

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service        service.ProductService
	pager          Pager
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewProductHandler creates a new product handler. maxUploadBytes bounds the
// whole multipart body of a create request.
func NewProductHandler(service service.ProductService, pager Pager, maxUploadBytes int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:        service,
		pager:          pager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := productParameters(r, h.pager)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	page, err := h.service.GetPage(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles multipart POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, model.ErrCodeValidation, "upload exceeds the size limit", h.logger)
			return
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid multipart form", h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req, err := productCreateRequest(r.MultipartForm)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	files := r.MultipartForm.File[imagesField]
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "unreadable image "+fh.Filename, h.logger)
			return
		}
		defer f.Close()
		req.Images = append(req.Images, model.ImageUpload{Filename: fh.Filename, Content: f})
	}

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.ProductUpdateDTO
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func productParameters(r *http.Request, pager Pager) (model.ProductParameters, error) {
	q := r.URL.Query()

	page, err := pager.Parse(q)
	if err != nil {
		return model.ProductParameters{}, err
	}

	categoryID, err := queryUUID(q, "categoryId")
	if err != nil {
		return model.ProductParameters{}, err
	}

	brandID, err := queryUUID(q, "brandId")
	if err != nil {
		return model.ProductParameters{}, err
	}

	return model.ProductParameters{
		PageParams: page,
		SearchTerm: strings.TrimSpace(q.Get("searchTerm")),
		CategoryID: categoryID,
		BrandID:    brandID,
	}, nil
}

// productCreateRequest reads the scalar fields of a multipart create form.
func productCreateRequest(form *multipart.Form) (model.ProductCreateDTO, error) {
	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	req := model.ProductCreateDTO{
		Name:        value("name"),
		Description: value("description"),
	}

	price, err := decimal.NewFromString(value("price"))
	if err != nil {
		return req, model.NewValidationError("price", "must be a decimal number")
	}
	req.Price = price

	if req.ModelYear, err = strconv.Atoi(value("modelYear")); err != nil {
		return req, model.NewValidationError("modelYear", "must be a number")
	}

	if req.CategoryID, err = uuid.Parse(value("categoryId")); err != nil {
		return req, model.NewValidationError("categoryId", "must be a uuid")
	}

	if req.BrandID, err = uuid.Parse(value("brandId")); err != nil {
		return req, model.NewValidationError("brandId", "must be a uuid")
	}

	return req, nil
}
