package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dropshop/internal/middleware"
	"dropshop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pager turns pageIndex/pageSize query parameters into page params.
type Pager struct {
	DefaultSize int
	MaxSize     int
}

// Parse reads pageIndex (default 1) and pageSize (default DefaultSize,
// capped at MaxSize). Non-numeric values are a validation error.
func (p Pager) Parse(q url.Values) (model.PageParams, error) {
	params := model.PageParams{PageIndex: 1, PageSize: p.DefaultSize}

	if v := q.Get("pageIndex"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, model.NewValidationError("pageIndex", "must be a number")
		}
		params.PageIndex = n
	}

	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return params, model.NewValidationError("pageSize", "must be a number")
		}
		params.PageSize = n
	}

	if p.MaxSize > 0 && params.PageSize > p.MaxSize {
		params.PageSize = p.MaxSize
	}

	return params, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.CorrelationID(r.Context())

	logger.Warn().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("correlation_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error onto the HTTP response. Store
// details are logged, never returned.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var (
		nf *model.NotFoundError
		ve *model.ValidationError
	)

	switch {
	case errors.As(err, &nf):
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, nf.Error(), logger)
	case errors.As(err, &ve):
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, ve.Error(), logger)
	default:
		logger.Error().
			Err(err).
			Str("correlation_id", middleware.CorrelationID(r.Context())).
			Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "an unexpected error occurred", logger)
	}
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "request body is required", logger)
			return false
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// pathUUID parses the named path value as a uuid, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid "+name+" format", logger)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(q url.Values, name string) (*uuid.UUID, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, model.NewValidationError(name, "must be a uuid")
	}
	return &id, nil
}

func queryDate(q url.Values, name string) (*time.Time, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	d, err := model.ParseDate(v)
	if err != nil {
		return nil, model.NewValidationError(name, err.Error())
	}
	return &d.Time, nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, model.NewValidationError(name, "must be true or false")
	}
	return &b, nil
}
