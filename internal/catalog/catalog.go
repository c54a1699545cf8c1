// Package catalog loads the static movie catalog and holds it read-only for
// the rest of the session.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/filter"
)

// Catalog is the full movie list as loaded. It is immutable after construction.
type Catalog struct {
	movies []domain.Movie
}

// New deep-copies movies into a Catalog
func New(movies []domain.Movie) *Catalog {
	return &Catalog{movies: domain.CloneMovies(movies)}
}

// Movies returns a deep copy of the catalog in original order
func (c *Catalog) Movies() []domain.Movie {
	if c == nil {
		return []domain.Movie{}
	}
	return domain.CloneMovies(c.movies)
}

// Len returns the number of movies; a nil catalog is empty
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.movies)
}

// Get returns the movie with id
func (c *Catalog) Get(id int) (domain.Movie, error) {
	if c != nil {
		for _, m := range c.movies {
			if m.ID == id {
				return m.Clone(), nil
			}
		}
	}
	return domain.Movie{}, domain.ErrMovieNotFound
}

// Filter runs the catalog query. A nil catalog (not loaded) yields no results.
func (c *Catalog) Filter(query string) []domain.Movie {
	if c == nil {
		return []domain.Movie{}
	}
	return domain.CloneMovies(filter.Movies(c.movies, query))
}

// Suggest returns close titles for a query that matched nothing
func (c *Catalog) Suggest(query string, limit int) []string {
	if c == nil {
		return nil
	}
	return filter.Suggest(c.movies, query, limit)
}

// Loader fetches the catalog once from its source
type Loader struct {
	source  domain.CatalogSource
	timeout time.Duration
	logger  *slog.Logger
}

// NewLoader creates a loader. A zero timeout means the caller's context alone bounds the fetch.
func NewLoader(source domain.CatalogSource, timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, timeout: timeout, logger: logger}
}

// Load performs the single catalog fetch
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	movies, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Error("failed to load catalog", "source", l.source.Origin(), "error", err)
		return nil, err
	}

	l.logger.Info("loaded catalog", "source", l.source.Origin(), "count", len(movies), "elapsed", time.Since(start))
	return New(movies), nil
}
