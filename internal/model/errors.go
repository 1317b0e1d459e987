package model

import "errors"

var (
	// Auth related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// Catalog related errors
	ErrMovieTitleNotFound = errors.New("movie with this title does not exist")
	ErrMovieIDNotFound    = errors.New("movie with this id does not exist")
	ErrMovieTitleExists   = errors.New("movie with this title already exists")
	ErrMovieNotFound      = errors.New("movie not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
