package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
	TokenKey    contextKey = "token"
)

// Identity is the signed-in user resolved from the session token.
type Identity struct {
	UserID uuid.UUID
	Name   string
}

// SetIdentityContext stores the resolved identity on the request context
func SetIdentityContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext returns the identity set by the session middleware, if any.
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(Identity)
	if !ok || identity.UserID == uuid.Nil {
		return Identity{}, false
	}
	return identity, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID, true
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
