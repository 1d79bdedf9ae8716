package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST surface onto a gorilla/mux router.
func NewRouter(films *FilmHandler, users *UserHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))

	filmsRouter := router.PathPrefix("/films").Subrouter()
	filmsRouter.HandleFunc("", films.AddFilm).Methods(http.MethodPost)
	filmsRouter.HandleFunc("", films.UpdateFilm).Methods(http.MethodPut)
	filmsRouter.HandleFunc("", films.GetFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/popular", films.GetPopularFilms).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{filmId:[0-9]+}", films.GetFilm).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{filmId:[0-9]+}", films.DeleteFilm).Methods(http.MethodDelete)
	filmsRouter.HandleFunc("/{filmId:[0-9]+}/like/{userId:[0-9]+}", films.AddLike).Methods(http.MethodPut)
	filmsRouter.HandleFunc("/{filmId:[0-9]+}/like/{userId:[0-9]+}", films.RemoveLike).Methods(http.MethodDelete)

	router.HandleFunc("/genres", films.GetGenres).Methods(http.MethodGet)
	router.HandleFunc("/genres/{genreId:[0-9]+}", films.GetGenre).Methods(http.MethodGet)
	router.HandleFunc("/mpa", films.GetRatings).Methods(http.MethodGet)
	router.HandleFunc("/mpa/{ratingId:[0-9]+}", films.GetRating).Methods(http.MethodGet)

	usersRouter := router.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("", users.AddUser).Methods(http.MethodPost)
	usersRouter.HandleFunc("", users.UpdateUser).Methods(http.MethodPut)
	usersRouter.HandleFunc("", users.GetUsers).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId:[0-9]+}", users.GetUser).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId:[0-9]+}/friends", users.GetFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId:[0-9]+}/friends/common/{otherId:[0-9]+}", users.GetCommonFriends).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{userId:[0-9]+}/friends/{friendId:[0-9]+}", users.AddFriend).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{userId:[0-9]+}/friends/{friendId:[0-9]+}", users.RemoveFriend).Methods(http.MethodDelete)
	usersRouter.HandleFunc("/{userId:[0-9]+}/friends/{friendId:[0-9]+}", users.ApproveFriend).Methods(http.MethodPatch)

	return router
}
