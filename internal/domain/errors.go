package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrAlreadyFavorite indicates the movie is already in the favorites collection
	ErrAlreadyFavorite = errors.New("the movie is on your favorites already")

	// ErrCatalogUnavailable indicates the catalog source could not be read
	ErrCatalogUnavailable = errors.New("catalog source is unavailable")

	// ErrCatalogInvalid indicates the catalog payload could not be decoded or violates id uniqueness
	ErrCatalogInvalid = errors.New("catalog payload is invalid")

	// ErrMovieNotFound indicates no catalog entry has the requested id
	ErrMovieNotFound = errors.New("movie not found")
)
