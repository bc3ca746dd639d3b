package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBooks implements usecase.BookService with canned results.
type stubBooks struct {
	search *response.SearchResponse
	stats  *response.BookStatsResponse
	detail *response.BookDetailResponse
	err    error
}

func (s *stubBooks) Search(ctx context.Context, query string) (*response.SearchResponse, error) {
	return s.search, s.err
}

func (s *stubBooks) GetBookDetail(ctx context.Context, isbn string) (*response.BookDetailResponse, error) {
	return s.detail, s.err
}

func (s *stubBooks) GetBookStats(ctx context.Context, isbn string) (*response.BookStatsResponse, error) {
	return s.stats, s.err
}

func withISBN(req *http.Request, isbn string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("isbn", isbn)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestBind_FormAndJSON(t *testing.T) {
	form := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=a%40example.com&password=pw"))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var fromForm request.LoginRequest
	require.NoError(t, bind(httptest.NewRecorder(), form, &fromForm))
	assert.Equal(t, "a@example.com", fromForm.Email)
	assert.Equal(t, "pw", fromForm.Password)

	body := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"b@example.com","password":"pw2"}`))
	body.Header.Set("Content-Type", "application/json; charset=utf-8")

	var fromJSON request.LoginRequest
	require.NoError(t, bind(httptest.NewRecorder(), body, &fromJSON))
	assert.Equal(t, "b@example.com", fromJSON.Email)

	bad := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":`))
	bad.Header.Set("Content-Type", "application/json")
	assert.Error(t, bind(httptest.NewRecorder(), bad, &fromJSON))
}

func TestAPIHandler_BookStats(t *testing.T) {
	h := NewAPIHandler(&stubBooks{stats: &response.BookStatsResponse{
		Title: "The Dark Is Rising", Author: "Susan Cooper", Year: 1973, ISBN: "1416949658",
		ReviewCount: 2, AverageScore: 4.5,
	}}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.BookStats(rec, withISBN(httptest.NewRequest(http.MethodGet, "/api/1416949658", nil), "1416949658"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"The Dark Is Rising","author":"Susan Cooper","year":1973,"isbn":"1416949658","review_count":2,"average_score":4.5}`,
		rec.Body.String())
}

func TestAPIHandler_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewAPIHandler(&stubBooks{err: usecase.ErrBookNotFound}, zap.NewNop()).
		BookStats(rec, withISBN(httptest.NewRequest(http.MethodGet, "/api/x", nil), "x"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid book isbn"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewAPIHandler(&stubBooks{err: assert.AnError}, zap.NewNop()).
		BookStats(rec, withISBN(httptest.NewRequest(http.MethodGet, "/api/x", nil), "x"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBookHandler_GatewayFailureIs500(t *testing.T) {
	h := NewBookHandler(&stubBooks{err: assert.AnError}, zap.NewNop())

	req := withISBN(httptest.NewRequest(http.MethodGet, "/books/1416949658", nil), "1416949658")
	req = req.WithContext(utils.SetIdentityContext(req.Context(), utils.Identity{UserID: uuid.New(), Name: "alice"}))

	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestBookHandler_Welcome(t *testing.T) {
	h := NewBookHandler(&stubBooks{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req = req.WithContext(utils.SetIdentityContext(req.Context(), utils.Identity{UserID: uuid.New(), Name: "alice"}))

	rec := httptest.NewRecorder()
	h.Books(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"alice"`)
}
