package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name   string `validate:"required"`
		Email  string `validate:"required,email"`
		Rating int    `validate:"gte=1,lte=5"`
	}

	assert.Nil(t, ValidateStruct(form{Name: "a", Email: "a@example.com", Rating: 3}))

	errs := ValidateStruct(form{Email: "nope", Rating: 9})
	assert.Equal(t, map[string]string{
		"Name":   "This field is required",
		"Email":  "Invalid email format",
		"Rating": "Must be at most 5",
	}, errs)
	assert.Equal(t, "Email: Invalid email format; Name: This field is required; Rating: Must be at most 5",
		FormatValidationErrors(errs))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_NAME", "books")
	t.Setenv("SESSION_DRIVER", "redis")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, "books", config.Database.Name)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, "redis", config.Session.Driver)
	assert.Equal(t, 24, config.Session.ExpiryHours)
	assert.Equal(t, 10, config.Rating.TimeoutSeconds)
	assert.Equal(t, 20, config.Auth.RatePerMinute)
	assert.Contains(t, config.Database.DSN(), "dbname=books")
}

func TestIdentityContext(t *testing.T) {
	_, ok := GetIdentityFromContext(context.Background())
	assert.False(t, ok)

	id := Identity{UserID: uuid.New(), Name: "alice"}
	ctx := SetIdentityContext(context.Background(), id)

	got, ok := GetIdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	userID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id.UserID, userID)

	_, ok = GetIdentityFromContext(SetIdentityContext(context.Background(), Identity{Name: "ghost"}))
	assert.False(t, ok)
}

func TestSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", time.Now().Add(time.Hour), true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec, false)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRedirectWithData(t *testing.T) {
	rec := httptest.NewRecorder()
	RedirectWithData(rec, "/books", "ok", map[string]string{"token": "t"})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/books", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"status":true,"message":"ok","data":{"token":"t"}}`, rec.Body.String())
}
