// Package omdb is a thin client for the OMDB movie-data API, used only
// by the startup catalog import.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-movie-catalog/internal/model"
)

type searchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type searchResponse struct {
	Search       []searchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// FetchPage requests one page of the fixed "movie" search and maps the
// results to catalog records, keeping the external imdbID as the id.
func (c *Client) FetchPage(ctx context.Context, page int) ([]model.Movie, error) {
	query := url.Values{}
	query.Set("s", "movie")
	query.Set("page", strconv.Itoa(page))
	query.Set("apikey", c.apiKey)

	reqURL := c.baseURL + "/?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %d: unexpected status %d", page, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}

	if strings.EqualFold(parsed.Response, "False") {
		return nil, fmt.Errorf("fetch page %d: api error: %s", page, parsed.Error)
	}

	movies := make([]model.Movie, 0, len(parsed.Search))
	for _, item := range parsed.Search {
		movies = append(movies, model.Movie{
			ID:     item.ImdbID,
			Title:  item.Title,
			Year:   parseYear(item.Year),
			Type:   optional(item.Type),
			Poster: optional(item.Poster),
		})
	}
	return movies, nil
}

// parseYear extracts the leading integer from OMDB year strings, which
// may be a plain year ("2012") or a range ("2012–2014"). Unparsable
// values ("N/A") become nil.
func parseYear(raw string) *int {
	digits := raw
	for i, r := range raw {
		if r < '0' || r > '9' {
			digits = raw[:i]
			break
		}
	}

	year, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &year
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return nil
	}
	return &s
}
