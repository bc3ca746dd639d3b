package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"book-review/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

type redisSessionRepository struct {
	rdb *redis.Client
	log *zap.Logger
	now func() time.Time
}

// NewRedisSessionRepository keeps sessions as JSON values that expire with the session.
func NewRedisSessionRepository(rdb *redis.Client, log *zap.Logger) SessionRepository {
	return &redisSessionRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "session_redis")),
		now: time.Now,
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (r *redisSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session for user %s already expired", session.UserID.String())
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKey(session.Token.String()), payload, ttl).Err(); err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *redisSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	payload, err := r.rdb.Get(ctx, sessionKey(tokenUUID.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	session.Token = tokenUUID

	if session.Expired(r.now()) {
		return nil, nil
	}

	return &session, nil
}

// Revoke deletes the session key. Malformed and unknown tokens are a no-op.
func (r *redisSessionRepository) Revoke(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil
	}

	if err := r.rdb.Del(ctx, sessionKey(tokenUUID.String())).Err(); err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// CleanExpiredSessions is a no-op: redis evicts keys when their TTL runs out.
func (r *redisSessionRepository) CleanExpiredSessions(ctx context.Context) error {
	return nil
}
