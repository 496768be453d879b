package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/catalog"
	"github.com/cinetick/cinetick/internal/model"
)

func newMovieAPI() *echo.Echo {
	h := NewMovieHandler(catalog.New())
	e := echo.New()
	e.GET("/v1/movies", h.List)
	e.GET("/v1/movies/:id", h.Get)
	return e
}

func listMovies(t *testing.T, e *echo.Echo, query string) []model.Movie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []model.Movie `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Items
}

func TestListMoviesFilters(t *testing.T) {
	e := newMovieAPI()

	all := listMovies(t, e, "")
	assert.Len(t, all, 6)

	bySearch := listMovies(t, e, "?search=avatar")
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Avatar: The Way of Water", bySearch[0].Title)

	byLanguage := listMovies(t, e, "?language=Telugu")
	require.Len(t, byLanguage, 1)
	assert.Equal(t, "RRR", byLanguage[0].Title)

	// "all" disables a filter
	assert.Len(t, listMovies(t, e, "?language=all&genre=all"), 6)

	// no match is an empty list, not an error
	assert.Empty(t, listMovies(t, e, "?search=nonexistent"))
}

func TestListMoviesIncludesFilterOptions(t *testing.T) {
	e := newMovieAPI()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []string `json:"languages"`
		Genres    []string `json:"genres"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Languages, "English")
	assert.Contains(t, resp.Languages, "Korean")
	assert.NotEmpty(t, resp.Genres)
}

func TestGetMovie(t *testing.T) {
	e := newMovieAPI()

	req := httptest.NewRequest(http.MethodGet, "/v1/movies/2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Item model.Movie `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Top Gun: Maverick", resp.Item.Title)
	assert.Equal(t, uint32(1499), resp.Item.BasePriceCents)

	req = httptest.NewRequest(http.MethodGet, "/v1/movies/999", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
