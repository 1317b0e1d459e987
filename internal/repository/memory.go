package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-movie-catalog/internal/model"
)

// MemoryUserRepository is an in-memory credential store used by unit
// tests that exercise services and handlers without PostgreSQL. It
// mirrors the behavior of UserRepository.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]model.User{}}
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	r.users[u.Username] = u
	return nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// MemoryMovieRepository is the in-memory counterpart of MovieRepository,
// including the unique-title backstop.
type MemoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[string]model.Movie
}

func NewMemoryMovieRepository() *MemoryMovieRepository {
	return &MemoryMovieRepository{movies: map[string]model.Movie{}}
}

func (r *MemoryMovieRepository) List(_ context.Context, limit int, offset int) ([]model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := r.sortedByTitleLocked()
	if offset >= len(sorted) {
		return []model.Movie{}, nil
	}

	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *MemoryMovieRepository) FindByTitle(_ context.Context, title string) (model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.movies {
		if m.Title == title {
			return m, nil
		}
	}
	return model.Movie{}, model.ErrMovieTitleNotFound
}

func (r *MemoryMovieRepository) FindByID(_ context.Context, id string) (model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return model.Movie{}, model.ErrMovieIDNotFound
	}
	return m, nil
}

func (r *MemoryMovieRepository) Create(_ context.Context, m model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.movies {
		if existing.Title == m.Title {
			return model.ErrMovieTitleExists
		}
	}
	r.movies[m.ID] = m
	return nil
}

func (r *MemoryMovieRepository) CreateBatch(_ context.Context, movies []model.Movie) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	titles := map[string]struct{}{}
	for _, existing := range r.movies {
		titles[existing.Title] = struct{}{}
	}

	inserted := 0
	for _, m := range movies {
		if _, ok := r.movies[m.ID]; ok {
			continue
		}
		if _, ok := titles[m.Title]; ok {
			continue
		}
		r.movies[m.ID] = m
		titles[m.Title] = struct{}{}
		inserted++
	}
	return inserted, nil
}

func (r *MemoryMovieRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movies[id]; !ok {
		return model.ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}

func (r *MemoryMovieRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.movies), nil
}

func (r *MemoryMovieRepository) sortedByTitleLocked() []model.Movie {
	sorted := make([]model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Title < sorted[j].Title })
	return sorted
}
