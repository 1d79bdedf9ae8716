package store

import (
	"context"
	"sort"
	"sync"

	"filmrate/internal/domain"
)

// MemoryFilmStore is a mutex-guarded in-memory FilmStore with interior id
// generation. It backs the tests and the STORAGE=memory deployment mode.
type MemoryFilmStore struct {
	mu     sync.RWMutex
	nextID int
	films  map[int]*domain.Film
	likes  map[int]map[int]bool

	genres  []domain.Genre
	ratings []domain.Mpa
}

func NewMemoryFilmStore() *MemoryFilmStore {
	return &MemoryFilmStore{
		nextID: 1,
		films:  make(map[int]*domain.Film),
		likes:  make(map[int]map[int]bool),
		genres: []domain.Genre{
			{ID: 1, Name: "Comedy"},
			{ID: 2, Name: "Drama"},
			{ID: 3, Name: "Cartoon"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Documentary"},
			{ID: 6, Name: "Action"},
		},
		ratings: []domain.Mpa{
			{ID: 1, Name: "G"},
			{ID: 2, Name: "PG"},
			{ID: 3, Name: "PG-13"},
			{ID: 4, Name: "R"},
			{ID: 5, Name: "NC-17"},
		},
	}
}

func (s *MemoryFilmStore) AddFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.resolveFilm(film)
	if err != nil {
		return nil, err
	}
	stored.ID = s.nextID
	s.nextID++

	s.films[stored.ID] = stored
	s.likes[stored.ID] = make(map[int]bool)
	return s.hydrateFilm(stored.ID), nil
}

func (s *MemoryFilmStore) UpdateFilm(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return nil, ErrFilmNotFound
	}
	stored, err := s.resolveFilm(film)
	if err != nil {
		return nil, err
	}
	stored.ID = film.ID
	s.films[film.ID] = stored
	return s.hydrateFilm(film.ID), nil
}

func (s *MemoryFilmStore) DeleteFilm(ctx context.Context, filmID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	delete(s.films, filmID)
	delete(s.likes, filmID)
	return nil
}

func (s *MemoryFilmStore) Film(ctx context.Context, filmID int) (*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.films[filmID]; !ok {
		return nil, ErrFilmNotFound
	}
	return s.hydrateFilm(filmID), nil
}

func (s *MemoryFilmStore) Films(ctx context.Context) ([]*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	films := make([]*domain.Film, 0, len(ids))
	for _, id := range ids {
		films = append(films, s.hydrateFilm(id))
	}
	return films, nil
}

func (s *MemoryFilmStore) AddLike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	likers, ok := s.likes[filmID]
	if !ok {
		return ErrFilmNotFound
	}
	likers[userID] = true
	return nil
}

func (s *MemoryFilmStore) RemoveLike(ctx context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	likers, ok := s.likes[filmID]
	if !ok {
		return ErrFilmNotFound
	}
	delete(likers, userID)
	return nil
}

func (s *MemoryFilmStore) Genre(ctx context.Context, genreID int) (*domain.Genre, error) {
	for _, genre := range s.genres {
		if genre.ID == genreID {
			g := genre
			return &g, nil
		}
	}
	return nil, ErrGenreNotFound
}

func (s *MemoryFilmStore) Genres(ctx context.Context) ([]domain.Genre, error) {
	genres := make([]domain.Genre, len(s.genres))
	copy(genres, s.genres)
	return genres, nil
}

func (s *MemoryFilmStore) Rating(ctx context.Context, ratingID int) (*domain.Mpa, error) {
	for _, rating := range s.ratings {
		if rating.ID == ratingID {
			r := rating
			return &r, nil
		}
	}
	return nil, ErrRatingNotFound
}

func (s *MemoryFilmStore) Ratings(ctx context.Context) ([]domain.Mpa, error) {
	ratings := make([]domain.Mpa, len(s.ratings))
	copy(ratings, s.ratings)
	return ratings, nil
}

// resolveFilm copies the film with its genre and rating references resolved
// against the reference data, de-duplicating genres. Caller holds the lock.
func (s *MemoryFilmStore) resolveFilm(film *domain.Film) (*domain.Film, error) {
	stored := &domain.Film{
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate,
		Duration:    film.Duration,
		Genres:      []domain.Genre{},
	}
	seen := make(map[int]bool, len(film.Genres))
	for _, ref := range film.Genres {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		genre, err := s.Genre(context.Background(), ref.ID)
		if err != nil {
			return nil, err
		}
		stored.Genres = append(stored.Genres, *genre)
	}
	sort.Slice(stored.Genres, func(i, j int) bool { return stored.Genres[i].ID < stored.Genres[j].ID })
	if film.Mpa != nil {
		rating, err := s.Rating(context.Background(), film.Mpa.ID)
		if err != nil {
			return nil, err
		}
		stored.Mpa = rating
	}
	return stored, nil
}

// hydrateFilm returns a copy safe to hand out. Caller holds the lock.
func (s *MemoryFilmStore) hydrateFilm(filmID int) *domain.Film {
	stored := s.films[filmID]
	film := *stored

	film.Likes = make([]int, 0, len(s.likes[filmID]))
	for userID := range s.likes[filmID] {
		film.Likes = append(film.Likes, userID)
	}
	sort.Ints(film.Likes)

	film.Genres = make([]domain.Genre, len(stored.Genres))
	copy(film.Genres, stored.Genres)
	if stored.Mpa != nil {
		mpa := *stored.Mpa
		film.Mpa = &mpa
	}
	return &film
}
