package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"filmrate/internal/domain"
)

// PostgresFilmStore implements FilmStore on top of PostgreSQL.
type PostgresFilmStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewPostgresFilmStore(db *sqlx.DB, logger *slog.Logger) (*PostgresFilmStore, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	return &PostgresFilmStore{db: db, logger: logger}, nil
}

// filmRow is the films table shape before hydration.
type filmRow struct {
	ID          int           `db:"id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	ReleaseDate domain.Date   `db:"release_date"`
	Duration    int           `db:"duration"`
	RatingID    sql.NullInt64 `db:"rating_id"`
}

func (s *PostgresFilmStore) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	query := `INSERT INTO films (title, description, release_date, duration, rating_id)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	if err := s.checkReferences(ctx, film); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Executing AddFilm query", slog.String("title", film.Name))
	var id int
	err := s.db.QueryRowContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, ratingID(film)).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert film: %w", translatePGError(err))
	}

	if err := s.insertFilmGenres(ctx, id, film.Genres); err != nil {
		return nil, err
	}
	return s.Film(ctx, id)
}

func (s *PostgresFilmStore) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	query := `UPDATE films SET title = $1, description = $2, release_date = $3, duration = $4, rating_id = $5
	          WHERE id = $6`

	if err := s.checkReferences(ctx, film); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Executing UpdateFilm query", slog.Int("filmID", film.ID))
	result, err := s.db.ExecContext(ctx, query,
		film.Name, film.Description, film.ReleaseDate, film.Duration, ratingID(film), film.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update film: %w", translatePGError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrFilmNotFound
	}

	// The genre association set is replaced wholesale: clear then reinsert.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("failed to clear film genres: %w", err)
	}
	if err := s.insertFilmGenres(ctx, film.ID, film.Genres); err != nil {
		return nil, err
	}
	return s.Film(ctx, film.ID)
}

func (s *PostgresFilmStore) DeleteFilm(ctx context.Context, filmID int) error {
	s.logger.DebugContext(ctx, "Executing DeleteFilm query", slog.Int("filmID", filmID))
	result, err := s.db.ExecContext(ctx, `DELETE FROM films WHERE id = $1`, filmID)
	if err != nil {
		return fmt.Errorf("failed to delete film: %w", translatePGError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return ErrFilmNotFound
	}
	return nil
}

func (s *PostgresFilmStore) Film(ctx context.Context, filmID int) (*domain.Film, error) {
	query := `SELECT id, title, description, release_date, duration, rating_id
	          FROM films WHERE id = $1`

	var row filmRow
	err := s.db.GetContext(ctx, &row, query, filmID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, fmt.Errorf("failed to get film by id: %w", err)
	}
	return s.hydrateFilm(ctx, row)
}

func (s *PostgresFilmStore) Films(ctx context.Context) ([]*domain.Film, error) {
	query := `SELECT id, title, description, release_date, duration, rating_id
	          FROM films ORDER BY id`

	var rows []filmRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	films := make([]*domain.Film, 0, len(rows))
	for _, row := range rows {
		film, err := s.hydrateFilm(ctx, row)
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	return films, nil
}

// AddLike is idempotent at the membership level: inserting an existing like
// hits the primary key and is silently skipped.
func (s *PostgresFilmStore) AddLike(ctx context.Context, filmID, userID int) error {
	query := `INSERT INTO likes (film_id, user_id, created_at) VALUES ($1, $2, NOW())
	          ON CONFLICT (film_id, user_id) DO NOTHING`

	s.logger.DebugContext(ctx, "Executing AddLike query", slog.Int("filmID", filmID), slog.Int("userID", userID))
	if _, err := s.db.ExecContext(ctx, query, filmID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", translatePGError(err))
	}
	return nil
}

// RemoveLike of an absent like is a no-op.
func (s *PostgresFilmStore) RemoveLike(ctx context.Context, filmID, userID int) error {
	s.logger.DebugContext(ctx, "Executing RemoveLike query", slog.Int("filmID", filmID), slog.Int("userID", userID))
	_, err := s.db.ExecContext(ctx, `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (s *PostgresFilmStore) Genre(ctx context.Context, genreID int) (*domain.Genre, error) {
	var genre domain.Genre
	err := s.db.GetContext(ctx, &genre, `SELECT id, name FROM genres WHERE id = $1`, genreID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}
	return &genre, nil
}

func (s *PostgresFilmStore) Genres(ctx context.Context) ([]domain.Genre, error) {
	var genres []domain.Genre
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresFilmStore) Rating(ctx context.Context, ratingID int) (*domain.Mpa, error) {
	var rating domain.Mpa
	err := s.db.GetContext(ctx, &rating, `SELECT id, rating_title FROM ratings WHERE id = $1`, ratingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating by id: %w", err)
	}
	return &rating, nil
}

func (s *PostgresFilmStore) Ratings(ctx context.Context) ([]domain.Mpa, error) {
	var ratings []domain.Mpa
	if err := s.db.SelectContext(ctx, &ratings, `SELECT id, rating_title FROM ratings ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresFilmStore) hydrateFilm(ctx context.Context, row filmRow) (*domain.Film, error) {
	film := &domain.Film{
		ID:          row.ID,
		Name:        row.Title,
		Description: row.Description,
		ReleaseDate: row.ReleaseDate,
		Duration:    row.Duration,
		Likes:       []int{},
		Genres:      []domain.Genre{},
	}

	if err := s.db.SelectContext(ctx, &film.Likes,
		`SELECT user_id FROM likes WHERE film_id = $1 ORDER BY user_id`, row.ID); err != nil {
		return nil, fmt.Errorf("failed to load film likes: %w", err)
	}
	if err := s.db.SelectContext(ctx, &film.Genres,
		`SELECT g.id, g.name FROM film_genres fg
		 JOIN genres g ON g.id = fg.genre_id
		 WHERE fg.film_id = $1 ORDER BY g.id`, row.ID); err != nil {
		return nil, fmt.Errorf("failed to load film genres: %w", err)
	}
	if row.RatingID.Valid {
		rating, err := s.Rating(ctx, int(row.RatingID.Int64))
		if err != nil {
			return nil, err
		}
		film.Mpa = rating
	}
	return film, nil
}

// insertFilmGenres persists the genre association set, de-duplicated so a film
// never carries two rows for the same genre.
func (s *PostgresFilmStore) insertFilmGenres(ctx context.Context, filmID int, genres []domain.Genre) error {
	seen := make(map[int]bool, len(genres))
	for _, genre := range genres {
		if seen[genre.ID] {
			continue
		}
		seen[genre.ID] = true
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)`, filmID, genre.ID)
		if err != nil {
			return fmt.Errorf("failed to insert film genre %d: %w", genre.ID, translatePGError(err))
		}
	}
	return nil
}

// checkReferences resolves the film's genre and rating references so unknown
// ids surface as not-found errors instead of foreign-key violations.
func (s *PostgresFilmStore) checkReferences(ctx context.Context, film *domain.Film) error {
	for _, genre := range film.Genres {
		if _, err := s.Genre(ctx, genre.ID); err != nil {
			return err
		}
	}
	if film.Mpa != nil {
		if _, err := s.Rating(ctx, film.Mpa.ID); err != nil {
			return err
		}
	}
	return nil
}

func ratingID(film *domain.Film) interface{} {
	if film.Mpa == nil {
		return nil
	}
	return film.Mpa.ID
}
