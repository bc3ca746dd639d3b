package response

import (
	"time"

	"book-review/internal/data/entity"
)

type ReviewResponse struct {
	ISBN      string    `json:"isbn"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// ReviewFormResponse is what the review form shows for the current user.
type ReviewFormResponse struct {
	Book            BookResponse    `json:"book"`
	AlreadyReviewed bool            `json:"already_reviewed"`
	Review          *ReviewResponse `json:"review,omitempty"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ISBN:      review.ISBN,
		UserID:    review.UserID.String(),
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedOn: review.CreatedOn,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToResponse(r))
	}
	return out
}
