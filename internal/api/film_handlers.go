package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"filmrate/internal/domain"
	"filmrate/internal/service"
)

const defaultPopularSize = 10

// FilmHandler holds the dependencies for the film, genre and MPA endpoints.
type FilmHandler struct {
	films    *service.FilmService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewFilmHandler(films *service.FilmService, logger *slog.Logger, validate *validator.Validate) *FilmHandler {
	return &FilmHandler{films: films, logger: logger, validate: validate}
}

func (h *FilmHandler) decodeFilm(w http.ResponseWriter, r *http.Request) (*domain.FilmPayload, bool) {
	var payload domain.FilmPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode film payload", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(r.Context(), payload); err != nil {
		h.logger.WarnContext(r.Context(), "Film payload validation failed", slog.String("error", err.Error()))
		respondError(w, r, h.logger, http.StatusBadRequest, "validation failed: "+err.Error())
		return nil, false
	}
	return &payload, true
}

func (h *FilmHandler) AddFilm(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeFilm(w, r)
	if !ok {
		return
	}
	film, err := h.films.AddFilm(r.Context(), payload.Film())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, film)
}

func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeFilm(w, r)
	if !ok {
		return
	}
	film, err := h.films.UpdateFilm(r.Context(), payload.Film())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, film)
}

func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.Films(r.Context())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, films)
}

func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "filmId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	film, err := h.films.Film(r.Context(), filmID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, film)
}

func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "filmId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	if err := h.films.DeleteFilm(r.Context(), filmID); err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, map[string]string{"message": "film deleted"})
}

func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.films.AddLike)
}

func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.films.RemoveLike)
}

func (h *FilmHandler) changeLike(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, filmID, userID int) (*domain.Film, error)) {
	filmID, err := pathID(r, "filmId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	film, err := op(r.Context(), filmID, userID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, film)
}

func (h *FilmHandler) GetPopularFilms(w http.ResponseWriter, r *http.Request) {
	size := defaultPopularSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, r, h.logger, http.StatusBadRequest, `incorrect parameter "size"`)
			return
		}
		size = parsed
	}
	order := service.DescendingOrder
	if raw := r.URL.Query().Get("sortingOrder"); raw != "" {
		order = raw
	}

	films, err := h.films.PopularFilms(r.Context(), size, order)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, films)
}

func (h *FilmHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.films.Genres(r.Context())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, genres)
}

func (h *FilmHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	genreID, err := pathID(r, "genreId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	genre, err := h.films.Genre(r.Context(), genreID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, genre)
}

func (h *FilmHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.films.Ratings(r.Context())
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, ratings)
}

func (h *FilmHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	ratingID, err := pathID(r, "ratingId")
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	rating, err := h.films.Rating(r.Context(), ratingID)
	if err != nil {
		respondFailure(w, r, h.logger, err)
		return
	}
	respondJSON(w, r, h.logger, http.StatusOK, rating)
}
