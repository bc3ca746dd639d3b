package wire

import (
	"net/http"

	"book-review/internal/adaptor"
	"book-review/internal/data/repository"
	"book-review/internal/usecase"
	"book-review/pkg/middleware"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes on top of the given repositories.
func Wiring(repo *repository.Repository, ratings usecase.RatingFetcher, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, ratings, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// public JSON API, no session lookup
	wireAPI(r, handler.API)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(repo.Session, logger))

		wireAuth(r, handler.Auth, config, logger)
		wireUser(r, handler.User)
		wireBook(r, handler.Book)
		wireReview(r, handler.Review)
	})

	return r
}
