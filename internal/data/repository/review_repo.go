package repository

import (
	"context"
	"errors"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByUserAndBook(ctx context.Context, userID uuid.UUID, isbn string) (*entity.Review, error)
	FindByBook(ctx context.Context, isbn string) ([]*entity.Review, error)
	GetBookReviewStats(ctx context.Context, isbn string) (*entity.ReviewStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// Create inserts the review; created_on is left to the column default.
// A second review for the same (isbn, user) yields ErrDuplicate.
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (isbn, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING created_on
	`

	err := r.db.QueryRow(ctx, query,
		review.ISBN,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.CreatedOn)

	if isUniqueViolation(err) {
		return fmt.Errorf("create review for book %s by user %s: %w",
			review.ISBN, review.UserID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("isbn", review.ISBN),
		)
		return fmt.Errorf("create review for book %s by user %s: %w",
			review.ISBN, review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID uuid.UUID, isbn string) (*entity.Review, error) {
	query := `
		SELECT isbn, user_id, rating, comment, created_on
		FROM reviews
		WHERE user_id = $1 AND isbn = $2
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, userID, isbn).Scan(
		&review.ISBN,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedOn,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and book",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("isbn", isbn),
		)
		return nil, fmt.Errorf("find review by user %s and book %s: %w",
			userID.String(), isbn, err)
	}

	return &review, nil
}

// FindByBook lists every review of isbn with the author's name, newest first.
func (r *reviewRepository) FindByBook(ctx context.Context, isbn string) ([]*entity.Review, error) {
	query := `
		SELECT r.isbn, r.user_id, r.rating, r.comment, r.created_on, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.isbn = $1
		ORDER BY r.created_on DESC, u.name
	`

	rows, err := r.db.Query(ctx, query, isbn)
	if err != nil {
		r.log.Error("Failed to find reviews by book",
			zap.Error(err),
			zap.String("isbn", isbn),
		)
		return nil, fmt.Errorf("find reviews by book %s: %w", isbn, err)
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0)
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ISBN,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedOn,
			&review.UserName,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) GetBookReviewStats(ctx context.Context, isbn string) (*entity.ReviewStats, error) {
	query := `
		SELECT
			COUNT(*) AS review_count,
			COALESCE(AVG(rating), 0)::float8 AS avg_rating
		FROM reviews
		WHERE isbn = $1
	`

	var stats entity.ReviewStats
	err := r.db.QueryRow(ctx, query, isbn).Scan(&stats.Count, &stats.Average)
	if err != nil {
		r.log.Error("Failed to get book review stats",
			zap.Error(err),
			zap.String("isbn", isbn),
		)
		return nil, fmt.Errorf("get review stats for %s: %w", isbn, err)
	}

	return &stats, nil
}
