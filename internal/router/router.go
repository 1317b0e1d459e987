package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-movie-catalog/internal/config"
	"go-movie-catalog/internal/handler"
	"go-movie-catalog/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	movieHandler *handler.MovieHandler,
	healthHandler *handler.HealthHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics())

	r.Get("/health", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/login", authHandler.Login)

		api.Get("/movies", movieHandler.List)
		api.Post("/movies", movieHandler.Add)
		api.Get("/movies/title/{title}", movieHandler.GetByTitle)
		api.Get("/movies/id/{id}", movieHandler.GetByID)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireAdmin).Delete("/movies/{id}", movieHandler.Delete)
	})

	return r
}
