package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchPage(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"s":      r.URL.Query().Get("s"),
			"page":   r.URL.Query().Get("page"),
			"apikey": r.URL.Query().Get("apikey"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Search": [
				{"Title": "Movie One", "Year": "2012", "imdbID": "tt0000001", "Type": "movie", "Poster": "http://img/1.jpg"},
				{"Title": "Series Two", "Year": "2012–2014", "imdbID": "tt0000002", "Type": "series", "Poster": "N/A"}
			],
			"totalResults": "2",
			"Response": "True"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	movies, err := client.FetchPage(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "movie", gotQuery["s"])
	assert.Equal(t, "3", gotQuery["page"])
	assert.Equal(t, "test-key", gotQuery["apikey"])

	require.Len(t, movies, 2)

	assert.Equal(t, "tt0000001", movies[0].ID)
	assert.Equal(t, "Movie One", movies[0].Title)
	require.NotNil(t, movies[0].Year)
	assert.Equal(t, 2012, *movies[0].Year)
	require.NotNil(t, movies[0].Poster)
	assert.Equal(t, "http://img/1.jpg", *movies[0].Poster)

	// Year ranges keep the leading year; "N/A" posters become nil.
	require.NotNil(t, movies[1].Year)
	assert.Equal(t, 2012, *movies[1].Year)
	assert.Nil(t, movies[1].Poster)
}

func TestClient_FetchPage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Response": "False", "Error": "Invalid API key!"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")
	_, err := client.FetchPage(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key!")
}

func TestClient_FetchPage_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.FetchPage(context.Background(), 1)
	assert.Error(t, err)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"2012", intPtr(2012)},
		{"2012–2014", intPtr(2012)},
		{"2012–", intPtr(2012)},
		{"N/A", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := parseYear(tt.raw)
		if tt.want == nil {
			assert.Nil(t, got, "raw=%q", tt.raw)
			continue
		}
		require.NotNil(t, got, "raw=%q", tt.raw)
		assert.Equal(t, *tt.want, *got, "raw=%q", tt.raw)
	}
}

func intPtr(v int) *int { return &v }
