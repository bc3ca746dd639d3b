package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is keyed by (ISBN, UserID); a user reviews a book at most once.
type Review struct {
	ISBN      string    `db:"isbn"`
	UserID    uuid.UUID `db:"user_id"`
	Rating    int       `db:"rating"` // 1-5
	Comment   *string   `db:"comment"`
	CreatedOn time.Time `db:"created_on"`

	// UserName is filled by queries joining users
	UserName string `db:"-"`
}

type ReviewStats struct {
	Count   int64
	Average float64
}
