// Package rating looks up aggregate ratings for a book from an external
// review-count service keyed by isbn.
package rating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// NoData is reported for both fields when the service does not know the isbn.
	NoData = "no data"
	// NoRating is reported when the service knows the book but has no average yet.
	NoRating = "No rating"
)

// ErrEmptyResult is returned when the service answers 2xx without any book entry.
var ErrEmptyResult = errors.New("rating service returned no books")

// Info is the display form of an external rating.
type Info struct {
	Average string `json:"average"`
	Count   string `json:"count"`
}

type reviewCountsResponse struct {
	Books []struct {
		ISBN             string      `json:"isbn"`
		AverageRating    string      `json:"average_rating"`
		WorkRatingsCount json.Number `json:"work_ratings_count"`
	} `json:"books"`
}

// Client is an HTTP client for the review counts endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client; timeout <= 0 falls back to 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRating issues a single lookup for isbn. There is no retry: any
// transport or decoding failure is returned to the caller.
func (c *Client) FetchRating(ctx context.Context, isbn string) (*Info, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("isbns", isbn)

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rating request for %s: %w", isbn, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &Info{Average: NoData, Count: NoData}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rating service returned status %d for %s", resp.StatusCode, isbn)
	}

	var payload reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rating response for %s: %w", isbn, err)
	}
	if len(payload.Books) == 0 {
		return nil, fmt.Errorf("%w: isbn %s", ErrEmptyResult, isbn)
	}

	first := payload.Books[0]

	average := strings.TrimSpace(first.AverageRating)
	if average == "" {
		average = NoRating
	} else {
		average = average + " / 5.00"
	}

	count := first.WorkRatingsCount.String()
	if count == "" {
		count = "0"
	}

	return &Info{Average: average, Count: count}, nil
}
