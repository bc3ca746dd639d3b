package usecase

import "errors"

// Domain errors surfaced to handlers; match them with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrBookNotFound       = errors.New("book not found")
	ErrAlreadyReviewed    = errors.New("book already reviewed by this user")
	ErrInvalidRating      = errors.New("rating is missing or invalid")
	ErrUserNotFound       = errors.New("user not found")
	ErrValidation         = errors.New("validation failed")
)
