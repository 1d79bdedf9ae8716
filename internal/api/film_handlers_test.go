package api_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmrate/internal/api"
	"filmrate/internal/domain"
	"filmrate/internal/service"
	"filmrate/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	films := store.NewMemoryFilmStore()
	users := store.NewMemoryUserStore()
	filmService := service.NewFilmService(films, users, logger)
	userService := service.NewUserService(users, logger)
	validate := domain.NewValidator()
	return api.NewRouter(
		api.NewFilmHandler(filmService, logger, validate),
		api.NewUserHandler(userService, logger, validate),
		logger,
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func postUser(t *testing.T, router http.Handler, login string) domain.User {
	t.Helper()
	body := fmt.Sprintf(`{"login":%q,"email":"%s@mail.ru","birthday":"1946-08-20"}`, login, login)
	rec := doRequest(t, router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[domain.User](t, rec)
}

func postFilm(t *testing.T, router http.Handler, name string) domain.Film {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"description":"adipisicing","releaseDate":"1967-03-25","duration":100}`, name)
	rec := doRequest(t, router, http.MethodPost, "/films", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[domain.Film](t, rec)
}

func TestPostFilmEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/films",
		`{"name":"nisi eiusmod","description":"adipisicing","releaseDate":"1967-03-25","duration":100}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	film := decodeBody[domain.Film](t, rec)
	assert.Equal(t, 1, film.ID)
	assert.Equal(t, "nisi eiusmod", film.Name)
	assert.Equal(t, "1967-03-25", film.ReleaseDate.String())
	assert.NotNil(t, film.Likes)
	assert.Empty(t, film.Likes)
	assert.Nil(t, film.Mpa)

	got := doRequest(t, router, http.MethodGet, "/films/1", "")
	require.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, rec.Body.String(), got.Body.String())
}

func TestPostFilmValidation(t *testing.T) {
	router := newTestRouter(t)

	cases := map[string]string{
		"blank name":         `{"name":"  ","description":"d","releaseDate":"1967-03-25","duration":100}`,
		"pre-cinema release": `{"name":"old","description":"d","releaseDate":"1895-12-27","duration":100}`,
		"future release":     `{"name":"new","description":"d","releaseDate":"2999-01-01","duration":100}`,
		"zero duration":      `{"name":"n","description":"d","releaseDate":"1967-03-25","duration":0}`,
		"negative duration":  `{"name":"n","description":"d","releaseDate":"1967-03-25","duration":-5}`,
		"long description": fmt.Sprintf(`{"name":"n","description":%q,"releaseDate":"1967-03-25","duration":100}`,
			strings.Repeat("x", 201)),
		"malformed body": `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/films", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	// the floor itself is allowed
	rec := doRequest(t, router, http.MethodPost, "/films",
		`{"name":"first","description":"d","releaseDate":"1895-12-28","duration":100}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPutFilmNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/films",
		`{"id":999,"name":"ghost","description":"d","releaseDate":"1967-03-25","duration":100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestFilmGenresAndRating(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/films",
		`{"name":"tagged","description":"d","releaseDate":"1967-03-25","duration":100,`+
			`"genres":[{"id":1},{"id":2},{"id":1}],"mpa":{"id":3}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	film := decodeBody[domain.Film](t, rec)
	require.Len(t, film.Genres, 2)
	assert.Equal(t, "Comedy", film.Genres[0].Name)
	assert.Equal(t, "Drama", film.Genres[1].Name)
	require.NotNil(t, film.Mpa)
	assert.Equal(t, "PG-13", film.Mpa.Name)

	rec = doRequest(t, router, http.MethodPost, "/films",
		`{"name":"bad genre","description":"d","releaseDate":"1967-03-25","duration":100,"genres":[{"id":99}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestLikeEndpoints(t *testing.T) {
	router := newTestRouter(t)

	film := postFilm(t, router, "likeable")
	user := postUser(t, router, "liker")

	likePath := fmt.Sprintf("/films/%d/like/%d", film.ID, user.ID)
	rec := doRequest(t, router, http.MethodPut, likePath, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	liked := decodeBody[domain.Film](t, rec)
	assert.Equal(t, []int{user.ID}, liked.Likes)

	// liking twice keeps membership
	rec = doRequest(t, router, http.MethodPut, likePath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	liked = decodeBody[domain.Film](t, rec)
	assert.Equal(t, []int{user.ID}, liked.Likes)

	rec = doRequest(t, router, http.MethodDelete, likePath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	liked = decodeBody[domain.Film](t, rec)
	assert.Empty(t, liked.Likes)

	rec = doRequest(t, router, http.MethodPut, fmt.Sprintf("/films/%d/like/999", film.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPut, fmt.Sprintf("/films/999/like/%d", user.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPopularFilmsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	zero := postFilm(t, router, "zero likes")
	one := postFilm(t, router, "one like")
	two := postFilm(t, router, "two likes")
	u1 := postUser(t, router, "first")
	u2 := postUser(t, router, "second")

	for _, pair := range [][2]int{{one.ID, u1.ID}, {two.ID, u1.ID}, {two.ID, u2.ID}} {
		rec := doRequest(t, router, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", pair[0], pair[1]), "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/films/popular?size=2&sortingOrder=desc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	top := decodeBody[[]domain.Film](t, rec)
	require.Len(t, top, 2)
	assert.Equal(t, two.ID, top[0].ID)
	assert.Equal(t, one.ID, top[1].ID)

	// defaults: size 10, descending
	rec = doRequest(t, router, http.MethodGet, "/films/popular", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]domain.Film](t, rec)
	require.Len(t, all, 3)
	assert.Equal(t, two.ID, all[0].ID)
	assert.Equal(t, zero.ID, all[2].ID)

	rec = doRequest(t, router, http.MethodGet, "/films/popular?sortingOrder=sideways", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/films/popular?size=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteFilmEndpoint(t *testing.T) {
	router := newTestRouter(t)

	film := postFilm(t, router, "short lived")
	rec := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/films/%d", film.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/films/%d", film.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/genres", "")
	require.Equal(t, http.StatusOK, rec.Code)
	genres := decodeBody[[]domain.Genre](t, rec)
	assert.Len(t, genres, 6)

	rec = doRequest(t, router, http.MethodGet, "/genres/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	genre := decodeBody[domain.Genre](t, rec)
	assert.Equal(t, "Comedy", genre.Name)

	rec = doRequest(t, router, http.MethodGet, "/genres/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/mpa", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ratings := decodeBody[[]domain.Mpa](t, rec)
	assert.Len(t, ratings, 5)

	rec = doRequest(t, router, http.MethodGet, "/mpa/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rating := decodeBody[domain.Mpa](t, rec)
	assert.Equal(t, "NC-17", rating.Name)

	rec = doRequest(t, router, http.MethodGet, "/mpa/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
