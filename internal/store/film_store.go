package store

import (
	"context"

	"filmrate/internal/domain"
)

// FilmStore is the persistence boundary for films, likes and the genre/MPA
// reference tables. Every method returning a film returns it fully hydrated.
type FilmStore interface {
	AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error)
	DeleteFilm(ctx context.Context, filmID int) error
	Film(ctx context.Context, filmID int) (*domain.Film, error)
	Films(ctx context.Context) ([]*domain.Film, error)

	AddLike(ctx context.Context, filmID, userID int) error
	RemoveLike(ctx context.Context, filmID, userID int) error

	Genre(ctx context.Context, genreID int) (*domain.Genre, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	Rating(ctx context.Context, ratingID int) (*domain.Mpa, error)
	Ratings(ctx context.Context) ([]domain.Mpa, error)
}
