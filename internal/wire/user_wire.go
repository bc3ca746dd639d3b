package wire

import (
	"book-review/internal/adaptor"
	"book-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.With(middleware.RequireAuth).Get("/me", userHandler.GetProfile)
}
