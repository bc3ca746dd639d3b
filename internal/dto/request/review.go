package request

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// CreateReviewRequest carries a submitted review. Rating is nil when the
// field was missing or not a number.
type CreateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=5000"`
}

func (r *CreateReviewRequest) FromForm(form url.Values) {
	r.Rating = parseRating(form.Get("rating"))
	r.Comment = normalizeComment(form.Get("comment"))
}

// UnmarshalJSON accepts the rating as a number or a numeric string. Anything
// else leaves Rating nil so it is reported as an invalid rating rather than
// a malformed body.
func (r *CreateReviewRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rating  json.RawMessage `json:"rating"`
		Comment *string         `json:"comment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Rating = nil
	var n int
	var s string
	switch {
	case len(raw.Rating) == 0 || string(raw.Rating) == "null":
	case json.Unmarshal(raw.Rating, &n) == nil:
		r.Rating = &n
	case json.Unmarshal(raw.Rating, &s) == nil:
		r.Rating = parseRating(s)
	}

	r.Comment = nil
	if raw.Comment != nil {
		r.Comment = normalizeComment(*raw.Comment)
	}
	return nil
}

func parseRating(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	rating, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &rating
}

func normalizeComment(raw string) *string {
	comment := strings.TrimSpace(raw)
	if comment == "" {
		return nil
	}
	return &comment
}
