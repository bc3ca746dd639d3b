// Package seed loads the initial book catalog from CSV.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"

	"go.uber.org/zap"
)

// Loader fills an empty catalog. A catalog that already has rows is left untouched.
type Loader struct {
	books repository.BookRepository
	log   *zap.Logger
}

func NewLoader(books repository.BookRepository, log *zap.Logger) *Loader {
	return &Loader{
		books: books,
		log:   log.With(zap.String("component", "seed")),
	}
}

// Load reads "isbn,title,author,year" rows (header first) from r and inserts
// them in one transaction. It returns the number of books inserted.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	count, err := l.books.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		l.log.Info("Catalog already seeded, skipping", zap.Int64("books", count))
		return 0, nil
	}

	books, err := ParseCSV(r)
	if err != nil {
		return 0, err
	}

	if err := l.books.CreateMany(ctx, books); err != nil {
		return 0, fmt.Errorf("insert books: %w", err)
	}

	l.log.Info("Catalog seeded", zap.Int("books", len(books)))
	return len(books), nil
}

// ParseCSV decodes the catalog file. The first row is a header and is skipped.
func ParseCSV(r io.Reader) ([]*entity.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []*entity.Book{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	books := make([]*entity.Book, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			line, _ := reader.FieldPos(3)
			return nil, fmt.Errorf("line %d: invalid year %q: %w", line, record[3], err)
		}

		books = append(books, &entity.Book{
			ISBN:   strings.TrimSpace(record[0]),
			Title:  record[1],
			Author: record[2],
			Year:   year,
		})
	}

	return books, nil
}
