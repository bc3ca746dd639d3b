package repository

import (
	"errors"

	"book-review/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert hits a unique or primary key constraint.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Book    BookRepository
	Review  ReviewRepository
}

// NewRepository wires the postgres repositories. The session store can be
// swapped afterwards (see NewRedisSessionRepository).
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Book:    NewBookRepository(db, log),
		Review:  NewReviewRepository(db, log),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
