package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"filmrate/internal/domain"
	"filmrate/internal/store"
)

const (
	AscendingOrder  = "asc"
	DescendingOrder = "desc"
)

// FilmService wraps the film store with the rules that do not belong to
// persistence: the release-date floor, like orchestration against both stores,
// and popularity sorting.
type FilmService struct {
	films  store.FilmStore
	users  store.UserStore
	logger *slog.Logger
}

func NewFilmService(films store.FilmStore, users store.UserStore, logger *slog.Logger) *FilmService {
	return &FilmService{films: films, users: users, logger: logger}
}

func (s *FilmService) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := checkReleaseDate(film); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Adding film", slog.String("title", film.Name))
	return s.films.AddFilm(ctx, film)
}

func (s *FilmService) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := checkReleaseDate(film); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Updating film", slog.Int("filmID", film.ID))
	return s.films.UpdateFilm(ctx, film)
}

func (s *FilmService) DeleteFilm(ctx context.Context, filmID int) error {
	s.logger.InfoContext(ctx, "Deleting film", slog.Int("filmID", filmID))
	return s.films.DeleteFilm(ctx, filmID)
}

func (s *FilmService) Film(ctx context.Context, filmID int) (*domain.Film, error) {
	return s.films.Film(ctx, filmID)
}

func (s *FilmService) Films(ctx context.Context) ([]*domain.Film, error) {
	return s.films.Films(ctx)
}

// AddLike requires both the film and the user to exist; adding an existing
// like is a membership-level no-op.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int) (*domain.Film, error) {
	if _, err := s.films.Film(ctx, filmID); err != nil {
		return nil, err
	}
	if _, err := s.users.User(ctx, userID); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Adding like", slog.Int("filmID", filmID), slog.Int("userID", userID))
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return nil, err
	}
	return s.films.Film(ctx, filmID)
}

// RemoveLike requires both ids to exist; removing an absent like is a no-op.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int) (*domain.Film, error) {
	if _, err := s.films.Film(ctx, filmID); err != nil {
		return nil, err
	}
	if _, err := s.users.User(ctx, userID); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Removing like", slog.Int("filmID", filmID), slog.Int("userID", userID))
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return nil, err
	}
	return s.films.Film(ctx, filmID)
}

// PopularFilms returns at most count films sorted by number of distinct
// likers. The sort is stable, so ties keep natural retrieval order.
func (s *FilmService) PopularFilms(ctx context.Context, count int, order string) ([]*domain.Film, error) {
	if order != AscendingOrder && order != DescendingOrder {
		return nil, incorrectParameter("sortingOrder")
	}
	if count <= 0 {
		return nil, incorrectParameter("size")
	}

	films, err := s.films.Films(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(films, func(i, j int) bool {
		if order == DescendingOrder {
			return len(films[i].Likes) > len(films[j].Likes)
		}
		return len(films[i].Likes) < len(films[j].Likes)
	})
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func (s *FilmService) Genre(ctx context.Context, genreID int) (*domain.Genre, error) {
	return s.films.Genre(ctx, genreID)
}

func (s *FilmService) Genres(ctx context.Context) ([]domain.Genre, error) {
	return s.films.Genres(ctx)
}

func (s *FilmService) Rating(ctx context.Context, ratingID int) (*domain.Mpa, error) {
	return s.films.Rating(ctx, ratingID)
}

func (s *FilmService) Ratings(ctx context.Context) ([]domain.Mpa, error) {
	return s.films.Ratings(ctx)
}

func checkReleaseDate(film *domain.Film) error {
	if film.ReleaseDate.IsZero() {
		return nil
	}
	if film.ReleaseDate.Before(domain.EarliestReleaseDate.Time) {
		return fmt.Errorf("%w: release date %s predates %s",
			ErrValidation, film.ReleaseDate, domain.EarliestReleaseDate)
	}
	return nil
}
