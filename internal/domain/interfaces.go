package domain

import "context"

// CatalogSource fetches the static movie catalog.
// Implementations perform a single read-only request and do not retry.
type CatalogSource interface {
	Fetch(ctx context.Context) ([]Movie, error)

	// Origin identifies where the catalog comes from (path or URL).
	// Durable storage is namespaced by origin.
	Origin() string
}
