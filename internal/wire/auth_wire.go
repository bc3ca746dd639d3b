package wire

import (
	"book-review/internal/adaptor"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	limiter := middleware.NewRateLimiter(config.Auth.RatePerMinute, log)

	// guest pages; signed-in callers go straight to the catalog
	r.With(middleware.RedirectIfAuthenticated).Get("/", authHandler.Landing)
	r.With(middleware.RedirectIfAuthenticated).Get("/registration", authHandler.RegisterForm)
	r.With(middleware.RedirectIfAuthenticated).Get("/login", authHandler.LoginForm)

	r.With(limiter.Handler).Post("/registration", authHandler.Register)
	r.With(limiter.Handler).Post("/login", authHandler.Login)

	r.Post("/logout", authHandler.Logout)
}
