package adaptor

import (
	"errors"
	"net/http"

	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookHandler struct {
	service usecase.BookService
	log     *zap.Logger
}

func NewBookHandler(service usecase.BookService, log *zap.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		log:     log.With(zap.String("handler", "book")),
	}
}

// Books handles GET /books. Without search_input it shows the welcome view.
func (h *BookHandler) Books(w http.ResponseWriter, r *http.Request) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	query := r.URL.Query()
	if !query.Has("search_input") {
		utils.ResponseSuccess(w, "Welcome, "+identity.Name, map[string]string{
			"name": identity.Name,
		})
		return
	}

	result, err := h.service.Search(r.Context(), query.Get("search_input"))
	if err != nil {
		h.handleServiceError(w, err, "search books")
		return
	}

	message := "Books found"
	switch {
	case result.EmptyQuery:
		message = "Search request is empty. No books found."
	case len(result.Books) == 0:
		message = "No books found"
	}

	utils.ResponseSuccess(w, message, result)
}

// Detail handles GET /books/{isbn}
func (h *BookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")

	detail, err := h.service.GetBookDetail(r.Context(), isbn)
	if err != nil {
		h.handleServiceError(w, err, "get book detail")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

func (h *BookHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, usecase.ErrBookNotFound.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
