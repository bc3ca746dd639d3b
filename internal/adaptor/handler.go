package adaptor

import (
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Book   *BookHandler
	Review *ReviewHandler
	API    *APIHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, config.Session.CookieSecure, log),
		User:   NewUserHandler(service.User, log),
		Book:   NewBookHandler(service.Book, log),
		Review: NewReviewHandler(service.Review, log),
		API:    NewAPIHandler(service.Book, log),
	}
}
