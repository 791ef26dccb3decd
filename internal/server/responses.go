package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/persistence"
	"github.com/username/vacation-planner/internal/session"
)

// ErrorResponse defines the standard error response structure
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// respondWithErr maps a domain error to its status code. Server errors are
// logged in full and reported with a generic message.
func (h *Handler) respondWithErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}

	message := err.Error()
	switch status {
	case http.StatusInsufficientStorage:
		message = "storage quota exceeded"
	case http.StatusInternalServerError:
		message = "internal error"
	}
	h.respondError(w, r, status, message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidDate),
		errors.Is(err, session.ErrInvalidView),
		errors.Is(err, session.ErrEmptyUserName),
		errors.Is(err, persistence.ErrImportRead),
		errors.Is(err, persistence.ErrImportParse),
		errors.Is(err, persistence.ErrImportShape):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUserExists),
		errors.Is(err, session.ErrNoUserSelected),
		errors.Is(err, session.ErrImportCancelled):
		return http.StatusConflict
	case errors.Is(err, persistence.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}
