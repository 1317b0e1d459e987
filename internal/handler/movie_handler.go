package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-movie-catalog/internal/model"
	"go-movie-catalog/internal/service"
	"go-movie-catalog/pkg/apierror"
)

type MovieHandler struct {
	service *service.MovieService
}

func NewMovieHandler(service *service.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

type movieResponse struct {
	Movie model.Movie `json:"movie"`
}

type movieListResponse struct {
	Movies []model.Movie `json:"movies"`
}

func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	movies, err := h.service.List(r.Context(), query.Page, query.Limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movieListResponse{Movies: movies})
}

func (h *MovieHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	movie, err := h.service.GetByTitle(r.Context(), title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movieResponse{Movie: movie})
}

func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	movie, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movieResponse{Movie: movie})
}

func (h *MovieHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.AddMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "Invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Title) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "Movie title is required", "title", http.StatusBadRequest))
		return
	}

	movie, err := h.service.Add(r.Context(), payload.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, movieResponse{Movie: movie})
}

// Delete removes a movie by id. The admin gate runs in the middleware
// chain before this handler is reached.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Movie deleted.")
}

// parseListQuery validates the pagination parameters before any handler
// work runs. Absent values fall back to page 1 and limit 10; garbage
// values are a validation error rather than a silent default.
func parseListQuery(r *http.Request) (model.ListMoviesQuery, error) {
	query := model.ListMoviesQuery{Page: 1, Limit: 10}

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, apierror.New("BAD_REQUEST", "Page number must be an integer", "page", http.StatusBadRequest)
		}
		query.Page = page
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, apierror.New("BAD_REQUEST", "Number of records to return must be an integer", "limit", http.StatusBadRequest)
		}
		query.Limit = limit
	}

	return query, nil
}
