package adaptor

import (
	"errors"
	"net/http"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// Form handles GET /books/{isbn}/review (protected)
func (h *ReviewHandler) Form(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.Redirect(w, r, "/")
		return
	}

	form, err := h.service.GetReviewForm(r.Context(), identity, chi.URLParam(r, "isbn"))
	if err != nil {
		h.handleServiceError(w, r, err, "get review form")
		return
	}

	utils.ResponseSuccess(w, "success", form)
}

// Submit handles POST /books/{isbn}/review (protected)
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.Redirect(w, r, "/")
		return
	}

	// an unreadable body counts as a missing rating, so the book and
	// duplicate checks still come first
	var req request.CreateReviewRequest
	if err := bind(w, r, &req); err != nil {
		h.log.Debug("Unreadable review body", zap.Error(err))
		req = request.CreateReviewRequest{}
	}

	isbn := chi.URLParam(r, "isbn")
	review, err := h.service.SubmitReview(r.Context(), identity, isbn, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "submit review")
		return
	}

	utils.RedirectWithData(w, "/books/"+isbn, "Review submitted", review)
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, usecase.ErrBookNotFound.Error())

	case errors.Is(err, usecase.ErrAlreadyReviewed):
		h.log.Warn(operation+" failed - already reviewed", zap.Error(err))
		h.redisplay(w, r, usecase.ErrAlreadyReviewed.Error())

	case errors.Is(err, usecase.ErrInvalidRating):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, usecase.ErrInvalidRating.Error(), map[string]string{
			"rating": "rating must be a whole number from 1 to 5",
		})

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// redisplay answers 409 with the current form state, including the review
// the user already left.
func (h *ReviewHandler) redisplay(w http.ResponseWriter, r *http.Request, message string) {
	identity, _ := utils.GetIdentityFromContext(r.Context())

	form, err := h.service.GetReviewForm(r.Context(), identity, chi.URLParam(r, "isbn"))
	if err != nil {
		h.log.Error("Failed to reload review form", zap.Error(err))
		utils.ResponseConflict(w, message, nil)
		return
	}

	utils.ResponseConflict(w, message, form)
}
