package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddMovieRequest struct {
	Title string `json:"title"`
}

// ListMoviesQuery holds the parsed pagination query parameters for the
// movie listing endpoint. Limit is the page size.
type ListMoviesQuery struct {
	Page  int
	Limit int
}
