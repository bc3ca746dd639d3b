package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"book-review/internal/data/entity"
	"book-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookRepository interface {
	FindByISBN(ctx context.Context, isbn string) (*entity.Book, error)
	Search(ctx context.Context, phrase string) ([]*entity.Book, error)
	CountAll(ctx context.Context) (int64, error)
	// CreateMany inserts all books in a single transaction.
	CreateMany(ctx context.Context, books []*entity.Book) error
}

type bookRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookRepository(db database.PgxIface, log *zap.Logger) BookRepository {
	return &bookRepository{
		db:  db,
		log: log.With(zap.String("repository", "book")),
	}
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	query := `
		SELECT isbn, title, author, year
		FROM books
		WHERE isbn = $1
	`

	var book entity.Book
	err := r.db.QueryRow(ctx, query, isbn).Scan(
		&book.ISBN,
		&book.Title,
		&book.Author,
		&book.Year,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find book by isbn",
			zap.Error(err),
			zap.String("isbn", isbn),
		)
		return nil, fmt.Errorf("find book by isbn %s: %w", isbn, err)
	}

	return &book, nil
}

// Search matches phrase as a case-insensitive substring of isbn, title or
// author. Results come back in storage order, unpaginated.
func (r *bookRepository) Search(ctx context.Context, phrase string) ([]*entity.Book, error) {
	query := `
		SELECT isbn, title, author, year
		FROM books
		WHERE isbn ILIKE $1
		   OR title ILIKE $1
		   OR author ILIKE $1
	`

	rows, err := r.db.Query(ctx, query, containsPattern(phrase))
	if err != nil {
		r.log.Error("Failed to search books",
			zap.Error(err),
			zap.String("phrase", phrase),
		)
		return nil, fmt.Errorf("search books %q: %w", phrase, err)
	}
	defer rows.Close()

	books := make([]*entity.Book, 0)
	for rows.Next() {
		var book entity.Book
		if err := rows.Scan(&book.ISBN, &book.Title, &book.Author, &book.Year); err != nil {
			r.log.Error("Failed to scan book row", zap.Error(err))
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}

	return books, nil
}

func (r *bookRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM books`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Database error counting books", zap.Error(err))
		return 0, fmt.Errorf("count books: %w", err)
	}

	return count, nil
}

func (r *bookRepository) CreateMany(ctx context.Context, books []*entity.Book) error {
	query := `
		INSERT INTO books (isbn, title, author, year)
		VALUES ($1, $2, $3, $4)
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin book import: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	for _, book := range books {
		if _, err := tx.Exec(ctx, query, book.ISBN, book.Title, book.Author, book.Year); err != nil {
			r.log.Error("Failed to insert book",
				zap.Error(err),
				zap.String("isbn", book.ISBN),
			)
			return fmt.Errorf("insert book %s: %w", book.ISBN, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit book import: %w", err)
	}

	r.log.Info("Books imported", zap.Int("count", len(books)))
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps phrase for a LIKE substring match, escaping wildcards
// so user input is matched literally.
func containsPattern(phrase string) string {
	return "%" + likeEscaper.Replace(phrase) + "%"
}
