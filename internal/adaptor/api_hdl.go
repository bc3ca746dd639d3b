package adaptor

import (
	"errors"
	"net/http"

	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIHandler serves the public, unauthenticated JSON API. Its bodies are not
// wrapped in the response envelope.
type APIHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewAPIHandler(service usecase.BookService, log *zap.Logger) *APIHandler {
	return &APIHandler{
		service: service,
		log:     log.With(zap.String("handler", "api")),
	}
}

// BookStats handles GET /api/{isbn}
func (h *APIHandler) BookStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetBookStats(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		h.handleServiceError(w, err, "get book stats")
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}

func (h *APIHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid book isbn"})

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
