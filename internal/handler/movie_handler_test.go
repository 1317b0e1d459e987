package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-movie-catalog/internal/middleware"
	"go-movie-catalog/internal/model"
	"go-movie-catalog/internal/repository"
	"go-movie-catalog/internal/service"
)

// newTestRouter wires the API surface against in-memory stores: the same
// handlers, middleware chain and route table as production, minus
// PostgreSQL.
func newTestRouter(t *testing.T) (http.Handler, *repository.MemoryMovieRepository) {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	movies := repository.NewMemoryMovieRepository()

	authService, err := service.NewAuthService("test-secret", 15*time.Minute, users)
	require.NoError(t, err)
	require.NoError(t, authService.SeedUsers(context.Background()))

	movieService := service.NewMovieService(movies)
	authMiddleware := middleware.NewAuthMiddleware(authService, authService)
	authHandler := NewAuthHandler(authService)
	movieHandler := NewMovieHandler(movieService)

	r := chi.NewRouter()
	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/login", authHandler.Login)
		api.Get("/movies", movieHandler.List)
		api.Post("/movies", movieHandler.Add)
		api.Get("/movies/title/{title}", movieHandler.GetByTitle)
		api.Get("/movies/id/{id}", movieHandler.GetByID)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Delete("/movies/{id}", movieHandler.Delete)
	})

	return r, movies
}

func doJSON(t *testing.T, router http.Handler, method string, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, router http.Handler, username string, password string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}

func addMovie(t *testing.T, router http.Handler, title string) model.Movie {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/movies", map[string]string{"title": title}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var parsed struct {
		Movie model.Movie `json:"movie"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return parsed.Movie
}

func TestLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	token := loginAs(t, router, "admin", "admin")
	assert.NotEmpty(t, token)
}

func TestLogin_BadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	// Wrong password and unknown username produce byte-identical bodies.
	wrongPassword := doJSON(t, router, http.MethodPost, "/api/v1/login",
		map[string]string{"username": "admin", "password": "wrong"}, "")
	unknownUser := doJSON(t, router, http.MethodPost, "/api/v1/login",
		map[string]string{"username": "nobody", "password": "wrong"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, `{"msg":"Bad username or password"}`, wrongPassword.Body.String())
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLogin_AbsentFieldsFailLookup(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/login", map[string]string{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"msg":"Bad username or password"}`, rec.Body.String())
}

func TestAddMovie(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/movies", map[string]string{"title": "Arrival"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var parsed map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	movie := parsed["movie"]
	assert.Regexp(t, `^tt\d{7}$`, movie["id"])
	assert.Equal(t, "Arrival", movie["title"])
	// Optional fields serialize as explicit nulls on the add path.
	assert.Contains(t, rec.Body.String(), `"year":null`)
	assert.Contains(t, rec.Body.String(), `"type":null`)
	assert.Contains(t, rec.Body.String(), `"poster":null`)
}

func TestAddMovie_DuplicateTitle(t *testing.T) {
	router, _ := newTestRouter(t)
	addMovie(t, router, "Heat")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/movies", map[string]string{"title": "Heat"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Movie with this title already exists"}`, rec.Body.String())
}

func TestAddMovie_MissingTitle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/movies", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMovie_ByTitleAndID(t *testing.T) {
	router, _ := newTestRouter(t)
	created := addMovie(t, router, "Arrival")

	byID := doJSON(t, router, http.MethodGet, "/api/v1/movies/id/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, byID.Code)

	byTitle := doJSON(t, router, http.MethodGet, "/api/v1/movies/title/Arrival", nil, "")
	require.Equal(t, http.StatusOK, byTitle.Code)

	assert.JSONEq(t, byID.Body.String(), byTitle.Body.String())
}

func TestGetMovie_Misses(t *testing.T) {
	router, _ := newTestRouter(t)

	byTitle := doJSON(t, router, http.MethodGet, "/api/v1/movies/title/Nothing", nil, "")
	assert.Equal(t, http.StatusNotFound, byTitle.Code)
	assert.JSONEq(t, `{"message":"Movie with this title does not exist"}`, byTitle.Body.String())

	byID := doJSON(t, router, http.MethodGet, "/api/v1/movies/id/tt9999999", nil, "")
	assert.Equal(t, http.StatusNotFound, byID.Code)
	assert.JSONEq(t, `{"message":"Movie with this id does not exist"}`, byID.Body.String())
}

func TestListMovies(t *testing.T) {
	router, _ := newTestRouter(t)
	for i := 0; i < 12; i++ {
		addMovie(t, router, fmt.Sprintf("Movie %02d", i))
	}

	var parsed struct {
		Movies []model.Movie `json:"movies"`
	}

	first := doJSON(t, router, http.MethodGet, "/api/v1/movies", nil, "")
	require.Equal(t, http.StatusOK, first.Code)
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &parsed))
	require.Len(t, parsed.Movies, 10)
	assert.Equal(t, "Movie 00", parsed.Movies[0].Title)

	second := doJSON(t, router, http.MethodGet, "/api/v1/movies?page=2&limit=10", nil, "")
	require.Equal(t, http.StatusOK, second.Code)
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &parsed))
	require.Len(t, parsed.Movies, 2)
	assert.Equal(t, "Movie 10", parsed.Movies[0].Title)
}

func TestListMovies_PastEnd(t *testing.T) {
	router, _ := newTestRouter(t)
	addMovie(t, router, "Solo")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/movies?page=50", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movies":[]}`, rec.Body.String())
}

func TestListMovies_InvalidQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/movies?page=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMovie_AdminFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	created := addMovie(t, router, "Dune")
	admin := loginAs(t, router, "admin", "admin")

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/movies/"+created.ID, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Movie deleted."}`, rec.Body.String())

	gone := doJSON(t, router, http.MethodGet, "/api/v1/movies/id/"+created.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, gone.Code)

	// Deleting the same id again reports the miss.
	again := doJSON(t, router, http.MethodDelete, "/api/v1/movies/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusNotFound, again.Code)
	assert.JSONEq(t, `{"message":"Movie not found."}`, again.Body.String())
}

func TestDeleteMovie_MissingToken(t *testing.T) {
	router, _ := newTestRouter(t)
	created := addMovie(t, router, "Dune")

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/movies/"+created.ID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Missing token!"}`, rec.Body.String())
}

func TestDeleteMovie_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)
	created := addMovie(t, router, "Dune")

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/movies/"+created.ID, nil, "garbage-token")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token!"}`, rec.Body.String())
}

func TestDeleteMovie_NonAdmin(t *testing.T) {
	router, movies := newTestRouter(t)
	created := addMovie(t, router, "Dune")
	user := loginAs(t, router, "user", "user")

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/movies/"+created.ID, nil, user)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Admin role required!"}`, rec.Body.String())

	// The record survives a forbidden delete.
	_, err := movies.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
}
