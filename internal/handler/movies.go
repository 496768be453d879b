package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/catalog"
)

// MovieHandler serves the public movie browse endpoints.  The catalog is
// static, so these handlers are read-only and safe to cache.
type MovieHandler struct {
	Catalog *catalog.Catalog
}

func NewMovieHandler(cat *catalog.Catalog) *MovieHandler {
	return &MovieHandler{Catalog: cat}
}

// List handles GET /v1/movies.  Supports ?search=, ?language= and ?genre=
// query parameters; "all" (or absence) disables the language and genre
// filters.  The response also carries the distinct filter options so
// clients can populate dropdowns without a second request.
func (h *MovieHandler) List(c echo.Context) error {
	movies := h.Catalog.Filter(
		c.QueryParam("search"),
		c.QueryParam("language"),
		c.QueryParam("genre"),
	)
	return c.JSON(http.StatusOK, echo.Map{
		"items":     movies,
		"languages": h.Catalog.Languages(),
		"genres":    h.Catalog.Genres(),
	})
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	m, ok := h.Catalog.ByID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}
