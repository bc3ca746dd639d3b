package usecase

import (
	"context"

	"book-review/internal/data/repository"
	"book-review/pkg/rating"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

// RatingFetcher looks up the external rating of a book; *rating.Client implements it.
type RatingFetcher interface {
	FetchRating(ctx context.Context, isbn string) (*rating.Info, error)
}

type Service struct {
	Auth   AuthService
	User   UserService
	Book   BookService
	Review ReviewService
}

func NewService(repo *repository.Repository, ratings RatingFetcher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo.User, log),
		Book:   NewBookService(repo, ratings, log),
		Review: NewReviewService(repo, log),
	}
}
