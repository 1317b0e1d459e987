package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-movie-catalog/internal/model"
	"go-movie-catalog/pkg/apierror"
)

// messageResponse is the `{"message": ...}` body shared by every error
// response except the login failure, which historically uses "msg".
type messageResponse struct {
	Message string `json:"message"`
}

type loginFailureResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, loginFailureResponse{Msg: "Bad username or password"})
	case errors.Is(err, model.ErrMovieTitleNotFound):
		writeMessage(w, http.StatusNotFound, "Movie with this title does not exist")
	case errors.Is(err, model.ErrMovieIDNotFound):
		writeMessage(w, http.StatusNotFound, "Movie with this id does not exist")
	case errors.Is(err, model.ErrMovieTitleExists):
		writeMessage(w, http.StatusBadRequest, "Movie with this title already exists")
	case errors.Is(err, model.ErrMovieNotFound):
		writeMessage(w, http.StatusNotFound, "Movie not found.")
	case errors.Is(err, model.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "Invalid input")
	case errors.As(err, &apiErr):
		writeMessage(w, apiErr.HTTPStatus, apiErr.Message)
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Unexpected server error")
	}
}
