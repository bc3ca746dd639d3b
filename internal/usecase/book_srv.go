package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"book-review/internal/data/repository"
	"book-review/internal/dto/response"

	"go.uber.org/zap"
)

type BookService interface {
	Search(ctx context.Context, query string) (*response.SearchResponse, error)
	GetBookDetail(ctx context.Context, isbn string) (*response.BookDetailResponse, error)
	GetBookStats(ctx context.Context, isbn string) (*response.BookStatsResponse, error)
}

type bookService struct {
	repo    *repository.Repository
	ratings RatingFetcher
	log     *zap.Logger
}

func NewBookService(repo *repository.Repository, ratings RatingFetcher, log *zap.Logger) BookService {
	return &bookService{
		repo:    repo,
		ratings: ratings,
		log:     log.With(zap.String("service", "book")),
	}
}

// Search runs a substring match over the catalog. A blank query is reported
// as EmptyQuery without touching the store.
func (s *bookService) Search(ctx context.Context, query string) (*response.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &response.SearchResponse{EmptyQuery: true}, nil
	}

	books, err := s.repo.Book.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	s.log.Debug("Books searched", zap.String("query", query), zap.Int("matches", len(books)))

	return &response.SearchResponse{
		Query: query,
		Books: response.BooksToResponse(books),
	}, nil
}

// GetBookDetail combines the catalog record, the external rating and the
// local reviews. A failing rating lookup fails the whole request.
func (s *bookService) GetBookDetail(ctx context.Context, isbn string) (*response.BookDetailResponse, error) {
	book, err := s.repo.Book.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	info, err := s.ratings.FetchRating(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("fetch rating for %s: %w", isbn, err)
	}

	reviews, err := s.repo.Review.FindByBook(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	stats, err := s.repo.Review.GetBookReviewStats(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	return &response.BookDetailResponse{
		Book:         response.BookToResponse(book),
		Rating:       *info,
		ReviewCount:  stats.Count,
		AverageScore: roundScore(stats.Average),
		Reviews:      response.ReviewsToResponse(reviews),
	}, nil
}

func (s *bookService) GetBookStats(ctx context.Context, isbn string) (*response.BookStatsResponse, error) {
	book, err := s.repo.Book.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	stats, err := s.repo.Review.GetBookReviewStats(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	return &response.BookStatsResponse{
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		ISBN:         book.ISBN,
		ReviewCount:  stats.Count,
		AverageScore: roundScore(stats.Average),
	}, nil
}

func roundScore(avg float64) float64 {
	return math.Round(avg*100) / 100
}
