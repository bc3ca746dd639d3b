package usecase

import (
	"context"
	"testing"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository/repotest"
	"book-review/pkg/rating"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookService(t *testing.T) (BookService, *repotest.Store, *fakeRatings) {
	t.Helper()
	store := repotest.NewStore(seedBooks()...)
	ratings := &fakeRatings{infos: map[string]*rating.Info{
		"0380795272": {Average: "4.06 / 5.00", Count: "28591"},
	}}
	return NewBookService(store.Repository(), ratings, testLogger), store, ratings
}

func TestSearch_EmptyQueryIsDistinctFromNoMatches(t *testing.T) {
	svc, _, _ := newBookService(t)
	ctx := context.Background()

	empty, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.True(t, empty.EmptyQuery)
	assert.Nil(t, empty.Books)

	none, err := svc.Search(ctx, "no such book")
	require.NoError(t, err)
	assert.False(t, none.EmptyQuery)
	assert.NotNil(t, none.Books)
	assert.Empty(t, none.Books)
}

func TestSearch_MatchesIsbnTitleAuthor(t *testing.T) {
	svc, _, _ := newBookService(t)
	ctx := context.Background()

	byISBN, err := svc.Search(ctx, "0380")
	require.NoError(t, err)
	require.Len(t, byISBN.Books, 1)
	assert.Equal(t, "0380795272", byISBN.Books[0].ISBN)

	byTitle, err := svc.Search(ctx, "dark is")
	require.NoError(t, err)
	require.Len(t, byTitle.Books, 1)
	assert.Equal(t, "The Dark Is Rising", byTitle.Books[0].Title)

	byAuthor, err := svc.Search(ctx, "Brooks")
	require.NoError(t, err)
	require.Len(t, byAuthor.Books, 1)
	assert.Equal(t, "Brooks", byAuthor.Query)
}

func TestGetBookDetail(t *testing.T) {
	svc, store, _ := newBookService(t)
	ctx := context.Background()

	repo := store.Repository()
	user := &entity.User{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "alice", Email: "a@example.com"}
	require.NoError(t, repo.User.Create(ctx, user))
	require.NoError(t, repo.Review.Create(ctx, &entity.Review{ISBN: "0380795272", UserID: user.ID, Rating: 4}))

	detail, err := svc.GetBookDetail(ctx, "0380795272")
	require.NoError(t, err)
	assert.Equal(t, "Krondor: The Betrayal", detail.Book.Title)
	assert.Equal(t, "4.06 / 5.00", detail.Rating.Average)
	assert.Equal(t, int64(1), detail.ReviewCount)
	assert.Equal(t, 4.0, detail.AverageScore)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "alice", detail.Reviews[0].UserName)
}

func TestGetBookDetail_UnknownToGateway(t *testing.T) {
	svc, _, _ := newBookService(t)

	detail, err := svc.GetBookDetail(context.Background(), "1416949658")
	require.NoError(t, err)
	assert.Equal(t, rating.Info{Average: rating.NoData, Count: rating.NoData}, detail.Rating)
}

func TestGetBookDetail_GatewayFailurePropagates(t *testing.T) {
	svc, _, ratings := newBookService(t)
	ratings.err = assert.AnError

	_, err := svc.GetBookDetail(context.Background(), "0380795272")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetBookDetail_NotFoundSkipsGateway(t *testing.T) {
	svc, _, ratings := newBookService(t)

	_, err := svc.GetBookDetail(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Zero(t, ratings.calls)
}

func TestGetBookStats_RoundsAverage(t *testing.T) {
	svc, store, _ := newBookService(t)
	ctx := context.Background()
	repo := store.Repository()

	for _, r := range []int{5, 4, 4} {
		require.NoError(t, repo.Review.Create(ctx, &entity.Review{ISBN: "1857231082", UserID: uuid.New(), Rating: r}))
	}

	stats, err := svc.GetBookStats(ctx, "1857231082")
	require.NoError(t, err)
	assert.Equal(t, "The Black Unicorn", stats.Title)
	assert.Equal(t, "Terry Brooks", stats.Author)
	assert.Equal(t, 1987, stats.Year)
	assert.Equal(t, "1857231082", stats.ISBN)
	assert.Equal(t, int64(3), stats.ReviewCount)
	assert.Equal(t, 4.33, stats.AverageScore)
}

func TestGetBookStats_NotFound(t *testing.T) {
	svc, _, _ := newBookService(t)

	_, err := svc.GetBookStats(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrBookNotFound)
}
