package repository

import (
	"context"
	"errors"
	"testing"

	"book-review/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%tolkien%", containsPattern("tolkien"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, containsPattern(`c:\dir`))
}

func TestBookSearch_ReturnsMatchesInOrder(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookRepository(mock, nopLogger())

	rows := pgxmock.NewRows([]string{"isbn", "title", "author", "year"}).
		AddRow("0380795272", "Krondor: The Betrayal", "Raymond E. Feist", 1998).
		AddRow("1416949658", "The Dark Is Rising", "Susan Cooper", 1973)
	mock.ExpectQuery(`ILIKE \$1`).
		WithArgs("%r%").
		WillReturnRows(rows)

	books, err := repo.Search(context.Background(), "r")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "0380795272", books[0].ISBN)
	assert.Equal(t, 1973, books[1].Year)
}

func TestBookSearch_NoMatchesIsEmptySlice(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookRepository(mock, nopLogger())

	mock.ExpectQuery(`FROM books`).
		WithArgs("%zzz%").
		WillReturnRows(pgxmock.NewRows([]string{"isbn", "title", "author", "year"}))

	books, err := repo.Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestBookFindByISBN_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookRepository(mock, nopLogger())

	mock.ExpectQuery(`WHERE isbn = \$1`).
		WithArgs("0000000000").
		WillReturnError(pgx.ErrNoRows)

	book, err := repo.FindByISBN(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestBookCountAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookRepository(mock, nopLogger())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM books`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5000)))

	count, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), count)
}

func TestBookCreateMany_CommitsOnce(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookRepository(mock, nopLogger())

	books := []*entity.Book{
		{ISBN: "0380795272", Title: "Krondor: The Betrayal", Author: "Raymond E. Feist", Year: 1998},
		{ISBN: "1416949658", Title: "The Dark Is Rising", Author: "Susan Cooper", Year: 1973},
	}

	mock.ExpectBegin()
	for _, b := range books {
		mock.ExpectExec(`INSERT INTO books`).
			WithArgs(b.ISBN, b.Title, b.Author, b.Year).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.CreateMany(context.Background(), books))
}

func TestBookCreateMany_RollsBackOnError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBookRepository(mock, nopLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO books`).
		WithArgs("1", "t", "a", 2000).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.CreateMany(context.Background(), []*entity.Book{{ISBN: "1", Title: "t", Author: "a", Year: 2000}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert book 1")
}
