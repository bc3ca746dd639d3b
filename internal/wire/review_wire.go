package wire

import (
	"book-review/internal/adaptor"
	"book-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/books/{isbn}/review", reviewHandler.Form)
		r.Post("/books/{isbn}/review", reviewHandler.Submit)
	})
}
