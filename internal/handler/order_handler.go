package handler

import (
	"net/http"

	"dropshop/internal/model"
	"dropshop/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	pager   Pager
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, pager Pager, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		pager:   pager,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := orderParameters(r, h.pager)
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

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderCreateDTO
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Update handles PUT /api/orders/{id} requests.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.OrderUpdateDTO
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func orderParameters(r *http.Request, pager Pager) (model.OrderParameters, error) {
	q := r.URL.Query()

	page, err := pager.Parse(q)
	if err != nil {
		return model.OrderParameters{}, err
	}

	from, err := queryDate(q, "fromDate")
	if err != nil {
		return model.OrderParameters{}, err
	}

	to, err := queryDate(q, "toDate")
	if err != nil {
		return model.OrderParameters{}, err
	}

	return model.OrderParameters{
		PageParams: page,
		Status:     q.Get("status"),
		FromDate:   from,
		ToDate:     to,
	}, nil
}
