package usecase

import (
	"context"
	"errors"
	"sync"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/pkg/rating"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testLogger = zap.NewNop()

func seedBooks() []*entity.Book {
	return []*entity.Book{
		{ISBN: "0380795272", Title: "Krondor: The Betrayal", Author: "Raymond E. Feist", Year: 1998},
		{ISBN: "1416949658", Title: "The Dark Is Rising", Author: "Susan Cooper", Year: 1973},
		{ISBN: "1857231082", Title: "The Black Unicorn", Author: "Terry Brooks", Year: 1987},
	}
}

// fakeRatings answers from a fixed table; unknown isbns report "no data".
type fakeRatings struct {
	mu    sync.Mutex
	infos map[string]*rating.Info
	err   error
	calls int
}

func (f *fakeRatings) FetchRating(ctx context.Context, isbn string) (*rating.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if info, ok := f.infos[isbn]; ok {
		return info, nil
	}
	return &rating.Info{Average: rating.NoData, Count: rating.NoData}, nil
}

var errStoreDown = errors.New("store down")

// racingUsers hides existing accounts from FindByEmail, as if a concurrent
// registration committed between the lookup and the insert.
type racingUsers struct {
	repository.UserRepository
}

func (racingUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

// racingReviews does the same for the per-user review lookup.
type racingReviews struct {
	repository.ReviewRepository
}

func (racingReviews) FindByUserAndBook(ctx context.Context, userID uuid.UUID, isbn string) (*entity.Review, error) {
	return nil, nil
}
