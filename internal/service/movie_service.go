package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"go-movie-catalog/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// MovieStore is the persistence surface the catalog needs.
type MovieStore interface {
	List(ctx context.Context, limit int, offset int) ([]model.Movie, error)
	FindByTitle(ctx context.Context, title string) (model.Movie, error)
	FindByID(ctx context.Context, id string) (model.Movie, error)
	Create(ctx context.Context, m model.Movie) error
	CreateBatch(ctx context.Context, movies []model.Movie) (int, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type MovieService struct {
	movies MovieStore
}

func NewMovieService(movies MovieStore) *MovieService {
	return &MovieService{movies: movies}
}

// List returns one page of the catalog ordered by title ascending. Page
// and limit fall back to their defaults when out of range; a page past
// the end of the catalog yields an empty slice, not an error.
func (s *MovieService) List(ctx context.Context, page int, limit int) ([]model.Movie, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	movies, err := s.movies.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list page %d: %w", page, err)
	}
	return movies, nil
}

func (s *MovieService) GetByTitle(ctx context.Context, title string) (model.Movie, error) {
	return s.movies.FindByTitle(ctx, title)
}

func (s *MovieService) GetByID(ctx context.Context, id string) (model.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

// Add creates a movie with only an id and a title; year, type and poster
// stay null on this path. The existence check produces the duplicate-title
// error the API promises, and the unique constraint on title backstops the
// window between check and insert.
func (s *MovieService) Add(ctx context.Context, title string) (model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Movie{}, model.ErrInvalidInput
	}

	_, err := s.movies.FindByTitle(ctx, title)
	if err == nil {
		return model.Movie{}, model.ErrMovieTitleExists
	}
	if !errors.Is(err, model.ErrMovieTitleNotFound) {
		return model.Movie{}, fmt.Errorf("check title: %w", err)
	}

	movie := model.Movie{
		ID:    newMovieID(),
		Title: title,
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	return s.movies.Delete(ctx, id)
}

// newMovieID produces an external-style identifier: "tt" followed by 7
// random decimal digits. Generated ids are not checked for collisions;
// only the title carries a uniqueness guarantee.
func newMovieID() string {
	return fmt.Sprintf("tt%07d", rand.IntN(10_000_000))
}
