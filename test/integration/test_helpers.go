//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"go-movie-catalog/internal/config"
	"go-movie-catalog/internal/database"
	"go-movie-catalog/internal/handler"
	"go-movie-catalog/internal/middleware"
	"go-movie-catalog/internal/repository"
	"go-movie-catalog/internal/router"
	"go-movie-catalog/internal/service"
)

// newServer wires the full HTTP stack against a disposable PostgreSQL
// container, with seeded users and an empty catalog.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("movies_test"),
		postgres.WithUsername("movies"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connString, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(ctx, connString, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	userRepo := repository.NewUserRepository(db.Pool)
	movieRepo := repository.NewMovieRepository(db.Pool)

	authService, err := service.NewAuthService("test-secret", 15*time.Minute, userRepo)
	require.NoError(t, err)
	require.NoError(t, authService.SeedUsers(ctx))

	movieService := service.NewMovieService(movieRepo)
	authMiddleware := middleware.NewAuthMiddleware(authService, authService)

	cfg := &config.Config{
		ServerPort:     "8080",
		RequestTimeout: 30 * time.Second,
		DatabaseURL:    connString,
		JWTSecret:      "test-secret",
		JWTAccessTTL:   15 * time.Minute,
		CORSOrigins:    []string{"*"},
	}

	appRouter := router.New(cfg, authMiddleware,
		handler.NewAuthHandler(authService),
		handler.NewMovieHandler(movieService),
		handler.NewHealthHandler(db),
	)

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method string, url string, body any, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func login(t *testing.T, serverURL string, username string, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, serverURL+"/api/v1/login",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, resp, &parsed)
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}
