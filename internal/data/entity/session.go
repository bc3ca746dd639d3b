package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     uuid.UUID  `db:"token" json:"-"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	UserName  string     `db:"user_name" json:"user_name"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"-"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
