package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Movie represents a single catalog entry.
// ID is the identity key within both the catalog and the favorites collection.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Image       string   `json:"image"` // Poster URL or relative asset path
}

// Clone returns a copy of m that shares no memory with it
func (m Movie) Clone() Movie {
	m.Genres = slices.Clone(m.Genres)
	return m
}

// CloneMovies deep-copies a movie slice. The result is never nil.
func CloneMovies(movies []Movie) []Movie {
	out := make([]Movie, len(movies))
	for i, m := range movies {
		out[i] = m.Clone()
	}
	return out
}

// GenreLine returns the genres formatted for display (e.g., "Genre(s): Drama, Sci-Fi")
func (m Movie) GenreLine() string {
	return "Genre(s): " + strings.Join(m.Genres, ", ")
}

// ElementID returns the key a rendered favorite entry is registered under
func (m Movie) ElementID() string {
	return ElementID(m.ID)
}

// ElementID formats the view key for a movie id ("movie-42")
func ElementID(id int) string {
	return "movie-" + strconv.Itoa(id)
}
