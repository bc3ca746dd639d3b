package usecase

import (
	"context"
	"errors"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	// GetReviewForm reports whether the user may still review isbn.
	GetReviewForm(ctx context.Context, identity utils.Identity, isbn string) (*response.ReviewFormResponse, error)
	SubmitReview(ctx context.Context, identity utils.Identity, isbn string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetReviewForm(ctx context.Context, identity utils.Identity, isbn string) (*response.ReviewFormResponse, error) {
	book, err := s.findBook(ctx, isbn)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByUserAndBook(ctx, identity.UserID, isbn)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	form := &response.ReviewFormResponse{Book: response.BookToResponse(book)}
	if existing != nil {
		existing.UserName = identity.Name
		review := response.ReviewToResponse(existing)
		form.AlreadyReviewed = true
		form.Review = &review
	}

	return form, nil
}

// SubmitReview checks, in order: the book exists, the user has not reviewed
// it yet, the rating is valid. Only then is the row written.
func (s *reviewService) SubmitReview(ctx context.Context, identity utils.Identity, isbn string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if _, err := s.findBook(ctx, isbn); err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByUserAndBook(ctx, identity.UserID, isbn)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Review validation failed", zap.Any("errors", errs))
		if _, ok := errs["Rating"]; ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRating, errs["Rating"])
		}
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	review := &entity.Review{
		ISBN:     isbn,
		UserID:   identity.UserID,
		Rating:   *req.Rating,
		Comment:  req.Comment,
		UserName: identity.Name,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("user_id", identity.UserID.String()),
		zap.String("isbn", isbn),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) findBook(ctx context.Context, isbn string) (*entity.Book, error) {
	book, err := s.repo.Book.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}
