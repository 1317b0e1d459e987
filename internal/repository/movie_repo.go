package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-movie-catalog/internal/model"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

// List returns movies ordered by title ascending, windowed by limit and
// offset. A window past the end of the table yields an empty slice.
func (r *MovieRepository) List(ctx context.Context, limit int, offset int) ([]model.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, year, type, poster
		 FROM movies ORDER BY title ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Type, &m.Poster); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (model.Movie, error) {
	var m model.Movie
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, year, type, poster FROM movies WHERE title = $1`, title).
		Scan(&m.ID, &m.Title, &m.Year, &m.Type, &m.Poster)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Movie{}, model.ErrMovieTitleNotFound
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("find movie by title: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (model.Movie, error) {
	var m model.Movie
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, year, type, poster FROM movies WHERE id = $1`, id).
		Scan(&m.ID, &m.Title, &m.Year, &m.Type, &m.Poster)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Movie{}, model.ErrMovieIDNotFound
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("find movie by id: %w", err)
	}
	return m, nil
}

// Create inserts a single movie. The unique constraint on title is the
// storage-level backstop for concurrent adds of the same title; a
// violation surfaces as model.ErrMovieTitleExists.
func (r *MovieRepository) Create(ctx context.Context, m model.Movie) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO movies (id, title, year, type, poster)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Title, m.Year, m.Type, m.Poster)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrMovieTitleExists
		}
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

// CreateBatch bulk-inserts movies, skipping rows that collide on id or
// title. Used by the startup importer; returns the number inserted.
func (r *MovieRepository) CreateBatch(ctx context.Context, movies []model.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, m := range movies {
		batch.Queue(
			`INSERT INTO movies (id, title, year, type, poster)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT DO NOTHING`,
			m.ID, m.Title, m.Year, m.Type, m.Poster)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range movies {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch insert movie: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return count, nil
}
