// Package catalog holds the static list of bookable movies and the filter
// used by the public browse endpoint.  The catalog is fixed at load time;
// movies are never created or destroyed at runtime.
package catalog

import (
	"strings"

	"github.com/cinetick/cinetick/internal/model"
)

// All is used as the language or genre filter value that matches every movie.
const All = "all"

// Catalog exposes read-only access to the movie list.
type Catalog struct {
	movies []model.Movie
}

// New returns a catalog over the default movie list.
func New() *Catalog { return &Catalog{movies: defaultMovies} }

// NewWithMovies returns a catalog over the given list.  Used by tests.
func NewWithMovies(movies []model.Movie) *Catalog { return &Catalog{movies: movies} }

// Movies returns the full catalog in source order.
func (c *Catalog) Movies() []model.Movie { return c.movies }

// ByID returns the movie with the given identifier.
func (c *Catalog) ByID(id string) (model.Movie, bool) {
	for _, m := range c.movies {
		if m.ID == id {
			return m, true
		}
	}
	return model.Movie{}, false
}

// Filter returns the movies matching all three criteria.  An empty query
// matches everything; otherwise the query must appear case-insensitively in
// the title, description or genre.  Language and genre match exactly unless
// set to "all".  Source order is preserved and an empty result is valid.
func (c *Catalog) Filter(query, language, genre string) []model.Movie {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Movie, 0, len(c.movies))
	for _, m := range c.movies {
		if query != "" &&
			!strings.Contains(strings.ToLower(m.Title), query) &&
			!strings.Contains(strings.ToLower(m.Description), query) &&
			!strings.Contains(strings.ToLower(m.Genre), query) {
			continue
		}
		if language != "" && language != All && m.Language != language {
			continue
		}
		if genre != "" && genre != All && m.Genre != genre {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Languages returns the distinct languages present in the catalog, in
// source order.  Handy for populating filter dropdowns.
func (c *Catalog) Languages() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, m := range c.movies {
		if _, ok := seen[m.Language]; !ok {
			seen[m.Language] = struct{}{}
			out = append(out, m.Language)
		}
	}
	return out
}

// Genres returns the distinct genres present in the catalog, in source order.
func (c *Catalog) Genres() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, m := range c.movies {
		if _, ok := seen[m.Genre]; !ok {
			seen[m.Genre] = struct{}{}
			out = append(out, m.Genre)
		}
	}
	return out
}

var defaultMovies = []model.Movie{
	{
		ID:             "1",
		Title:          "Avatar: The Way of Water",
		Genre:          "Sci-Fi/Adventure",
		Duration:       "3h 12m",
		Rating:         4.5,
		BasePriceCents: 1599,
		Language:       "English",
		Showtimes:      []string{"10:00 AM", "2:00 PM", "6:00 PM", "10:00 PM"},
		Description:    "Jake Sully lives with his newfound family formed on the extrasolar moon Pandora.",
	},
	{
		ID:             "2",
		Title:          "Top Gun: Maverick",
		Genre:          "Action/Drama",
		Duration:       "2h 37m",
		Rating:         4.8,
		BasePriceCents: 1499,
		Language:       "English",
		Showtimes:      []string{"11:00 AM", "3:00 PM", "7:00 PM", "10:30 PM"},
		Description:    "After thirty years, Maverick is still pushing the envelope as a top naval aviator.",
	},
	{
		ID:             "3",
		Title:          "Black Panther: Wakanda Forever",
		Genre:          "Action/Adventure",
		Duration:       "2h 41m",
		Rating:         4.3,
		BasePriceCents: 1699,
		Language:       "English",
		Showtimes:      []string{"12:00 PM", "4:00 PM", "8:00 PM", "11:00 PM"},
		Description:    "The people of Wakanda fight to protect their home from intervening world powers.",
	},
	{
		ID:             "4",
		Title:          "RRR",
		Genre:          "Action/Drama",
		Duration:       "3h 7m",
		Rating:         4.6,
		BasePriceCents: 1299,
		Language:       "Telugu",
		Showtimes:      []string{"10:30 AM", "2:30 PM", "6:30 PM"},
		Description:    "A fearless revolutionary and an officer in the British force clash in 1920s India.",
	},
	{
		ID:             "5",
		Title:          "Jawan",
		Genre:          "Action/Thriller",
		Duration:       "2h 49m",
		Rating:         4.2,
		BasePriceCents: 1399,
		Language:       "Hindi",
		Showtimes:      []string{"11:30 AM", "3:30 PM", "7:30 PM", "11:00 PM"},
		Description:    "A man driven by a personal vendetta rights the wrongs done to society.",
	},
	{
		ID:             "6",
		Title:          "Parasite",
		Genre:          "Drama/Thriller",
		Duration:       "2h 12m",
		Rating:         4.7,
		BasePriceCents: 1199,
		Language:       "Korean",
		Showtimes:      []string{"1:00 PM", "5:00 PM", "9:00 PM"},
		Description:    "Greed and class discrimination threaten the symbiosis between two families.",
	},
}
