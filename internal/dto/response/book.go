package response

import (
	"book-review/internal/data/entity"
	"book-review/pkg/rating"
)

type BookResponse struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// SearchResponse distinguishes an empty query (EmptyQuery) from a query
// without matches (empty Books).
type SearchResponse struct {
	Query      string         `json:"search_string"`
	EmptyQuery bool           `json:"empty_query"`
	Books      []BookResponse `json:"books"`
}

type BookDetailResponse struct {
	Book         BookResponse     `json:"book"`
	Rating       rating.Info      `json:"external_rating"`
	ReviewCount  int64            `json:"review_count"`
	AverageScore float64          `json:"average_score"`
	Reviews      []ReviewResponse `json:"reviews"`
}

// BookStatsResponse is the public /api/{isbn} payload.
type BookStatsResponse struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Year         int     `json:"year"`
	ISBN         string  `json:"isbn"`
	ReviewCount  int64   `json:"review_count"`
	AverageScore float64 `json:"average_score"`
}

func BookToResponse(book *entity.Book) BookResponse {
	return BookResponse{
		ISBN:   book.ISBN,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
	}
}

func BooksToResponse(books []*entity.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, BookToResponse(b))
	}
	return out
}
