package middleware

import (
	"net/http"
	"strings"

	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session resolves the caller's session token, taken from the session cookie
// or an "Authorization: Bearer <token>" header, and stores the identity on the
// request context. Requests without a valid session pass through anonymously;
// a token that is not a uuid is treated as absent.
func Session(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// the token is still forwarded so logout can clear a stale cookie
			ctx := utils.SetTokenContext(r.Context(), token)
			if session == nil {
				logger.Debug("Invalid or expired session")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = utils.SetIdentityContext(ctx, utils.Identity{
				UserID: session.UserID,
				Name:   session.UserName,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken returns the canonical form of the presented token, or "".
func extractToken(r *http.Request) string {
	raw := ""
	if cookie, err := r.Cookie(utils.SessionCookieName); err == nil && cookie.Value != "" {
		raw = cookie.Value
	} else {
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			raw = strings.TrimSpace(parts[1])
		}
	}

	token, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return token.String()
}

// RequireAuth sends anonymous callers back to the landing page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetIdentityFromContext(r.Context()); !ok {
			utils.Redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthenticated sends signed-in callers straight to the catalog.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetIdentityFromContext(r.Context()); ok {
			utils.Redirect(w, r, "/books")
			return
		}
		next.ServeHTTP(w, r)
	})
}
