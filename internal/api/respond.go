package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"filmrate/internal/service"
	"filmrate/internal/store"
)

func respondJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.ErrorContext(r.Context(), "Failed to encode JSON response",
				slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, message string) {
	respondJSON(w, r, logger, status, map[string]string{"error": message})
}

// respondFailure maps service and store errors onto HTTP statuses in one
// place, so every handler answers the same way.
func respondFailure(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Unexpected error",
			slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		respondError(w, r, logger, status, "internal server error")
		return
	}
	respondError(w, r, logger, status, err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrFilmNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrGenreNotFound),
		errors.Is(err, store.ErrRatingNotFound),
		errors.Is(err, store.ErrFriendNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConstraintViolated),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrIncorrectParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathID extracts a positive integer path variable. The router's patterns
// guarantee digits, so failures here mean an out-of-range value.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, service.ErrIncorrectParameter
	}
	return id, nil
}
