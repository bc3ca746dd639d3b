package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_Success(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, nopLogger())

	user := &entity.User{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, "alice", "alice@example.com", "hash", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), user))
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, nopLogger())

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserFindByEmail_Found(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, nopLogger())

	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "name", "email", "password", "created_at"}).
		AddRow(id, "alice", "alice@example.com", "hash", created)
	mock.ExpectQuery(`SELECT id, name, email, password, created_at\s+FROM users\s+WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, created, user.CreatedAt)
}

func TestUserFindByEmail_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, nopLogger())

	mock.ExpectQuery(`FROM users`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserFindByID_DBError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, nopLogger())

	id := uuid.New()
	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
