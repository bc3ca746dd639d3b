// Package repotest provides in-memory repositories for tests of the layers
// above the database.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store holds every table; the repositories below share it.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	books    []*entity.Book
	reviews  []*entity.Review
	sessions map[string]*entity.Session

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore(books ...*entity.Book) *Store {
	return &Store{
		users:    make(map[uuid.UUID]*entity.User),
		books:    books,
		sessions: make(map[string]*entity.Session),
	}
}

// Repository returns a repository.Repository backed by s.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:    &userRepo{s},
		Session: &sessionRepo{s},
		Book:    &bookRepo{s},
		Review:  &reviewRepo{s},
	}
}

// ReviewCount returns the number of stored reviews for (isbn, userID).
func (s *Store) ReviewCount(isbn string, userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reviews {
		if r.ISBN == isbn && r.UserID == userID {
			n++
		}
	}
	return n
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cp := *session
	r.s.sessions[session.Token.String()] = &cp
	return nil
}

// errInvalidUUID mirrors postgres rejecting a malformed value for a uuid column.
var errInvalidUUID = &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

func (r *sessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if err := uuid.Validate(token); err != nil {
		return nil, errInvalidUUID
	}
	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil || sess.Expired(time.Now()) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r *sessionRepo) Revoke(ctx context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := uuid.Validate(token); err != nil {
		return errInvalidUUID
	}
	if sess, ok := r.s.sessions[token]; ok && sess.RevokedAt == nil {
		now := time.Now()
		sess.RevokedAt = &now
	}
	return nil
}

func (r *sessionRepo) CleanExpiredSessions(ctx context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for token, sess := range r.s.sessions {
		if sess.RevokedAt != nil || sess.Expired(time.Now()) {
			delete(r.s.sessions, token)
		}
	}
	return nil
}

type bookRepo struct{ s *Store }

func (r *bookRepo) FindByISBN(ctx context.Context, isbn string) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, b := range r.s.books {
		if b.ISBN == isbn {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *bookRepo) Search(ctx context.Context, phrase string) ([]*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	needle := strings.ToLower(phrase)
	out := make([]*entity.Book, 0)
	for _, b := range r.s.books {
		if strings.Contains(strings.ToLower(b.ISBN), needle) ||
			strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *bookRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.s.books)), nil
}

func (r *bookRepo) CreateMany(ctx context.Context, books []*entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, b := range books {
		cp := *b
		r.s.books = append(r.s.books, &cp)
	}
	return nil
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.reviews {
		if existing.ISBN == review.ISBN && existing.UserID == review.UserID {
			return repository.ErrDuplicate
		}
	}
	review.CreatedOn = time.Now().UTC().Truncate(24 * time.Hour)
	cp := *review
	r.s.reviews = append(r.s.reviews, &cp)
	return nil
}

func (r *reviewRepo) FindByUserAndBook(ctx context.Context, userID uuid.UUID, isbn string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, rv := range r.s.reviews {
		if rv.ISBN == isbn && rv.UserID == userID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *reviewRepo) FindByBook(ctx context.Context, isbn string) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*entity.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.ISBN != isbn {
			continue
		}
		cp := *rv
		if u, ok := r.s.users[rv.UserID]; ok {
			cp.UserName = u.Name
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	return out, nil
}

func (r *reviewRepo) GetBookReviewStats(ctx context.Context, isbn string) (*entity.ReviewStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var stats entity.ReviewStats
	sum := 0
	for _, rv := range r.s.reviews {
		if rv.ISBN == isbn {
			stats.Count++
			sum += rv.Rating
		}
	}
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return &stats, nil
}
