package store

import "errors"

// Sentinel errors returned by stores. The API layer maps them to HTTP
// statuses; services and stores wrap them with context via fmt.Errorf and %w.
var (
	ErrFilmNotFound   = errors.New("film not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrGenreNotFound  = errors.New("genre not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrFriendNotFound = errors.New("friend not found")

	// ErrConstraintViolated covers uniqueness and referential-integrity
	// failures raised by the database.
	ErrConstraintViolated = errors.New("constraint violated")
)
