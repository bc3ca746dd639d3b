package wire

import (
	"book-review/internal/adaptor"
	"book-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBook(r chi.Router, bookHandler *adaptor.BookHandler) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/books", bookHandler.Books) // GET /books?search_input=...
		r.Get("/books/{isbn}", bookHandler.Detail)
	})
}

func wireAPI(r chi.Router, apiHandler *adaptor.APIHandler) {
	r.Get("/api/{isbn}", apiHandler.BookStats)
}
