package service

import (
	"context"
	"log/slog"

	"go-movie-catalog/internal/model"
)

// MovieFetcher retrieves one page of movie records from the external
// movie-data API.
type MovieFetcher interface {
	FetchPage(ctx context.Context, page int) ([]model.Movie, error)
}

// ImportService seeds the catalog from the external movie database at
// startup. It is an operational nicety: every failure is logged and
// swallowed so the request-handling paths never depend on it.
type ImportService struct {
	movies  MovieStore
	fetcher MovieFetcher
	pages   int
}

func NewImportService(movies MovieStore, fetcher MovieFetcher, pages int) *ImportService {
	return &ImportService{movies: movies, fetcher: fetcher, pages: pages}
}

// Run imports movies when the catalog is empty. External ids are kept as
// primary keys; rows colliding on id or title are skipped.
func (s *ImportService) Run(ctx context.Context) {
	count, err := s.movies.Count(ctx)
	if err != nil {
		slog.Error("import skipped: counting movies failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("movies already exist, skipping import", "count", count)
		return
	}

	collected := make([]model.Movie, 0)
	for page := 1; page <= s.pages; page++ {
		movies, err := s.fetcher.FetchPage(ctx, page)
		if err != nil {
			slog.Error("import page failed", "page", page, "error", err)
			continue
		}
		collected = append(collected, movies...)
	}

	if len(collected) == 0 {
		slog.Warn("import fetched no movies")
		return
	}

	inserted, err := s.movies.CreateBatch(ctx, collected)
	if err != nil {
		slog.Error("import bulk insert failed", "error", err)
		return
	}

	slog.Info("catalog imported", "fetched", len(collected), "inserted", inserted)
}
