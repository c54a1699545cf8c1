// Package app composes the catalog, durable storage and favorites store into
// one explicitly owned session context.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmcdole/flicks/internal/catalog"
	"github.com/mmcdole/flicks/internal/config"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/favorites"
	"github.com/mmcdole/flicks/internal/store"
	"github.com/spf13/afero"
)

// CatalogStatus tracks the single catalog fetch
type CatalogStatus int

const (
	CatalogLoading CatalogStatus = iota
	CatalogReady
	CatalogFailed
)

func (s CatalogStatus) String() string {
	switch s {
	case CatalogLoading:
		return "loading"
	case CatalogReady:
		return "ready"
	case CatalogFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CatalogState is the catalog as seen by the presentation layer.
// A failed fetch leaves Catalog nil and Err set; filtering then yields no results.
type CatalogState struct {
	Status  CatalogStatus
	Catalog *catalog.Catalog
	Err     error
}

// Options override collaborators, mainly for tests
type Options struct {
	FS     afero.Fs     // Filesystem for file catalog sources (default OS)
	Client *http.Client // HTTP client for URL catalog sources (default http.DefaultClient)
	KV     domain.KeyValueStore
	Source domain.CatalogSource
}

// App owns one browsing session: constructed at startup by Open, torn down by Close
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	kv        domain.KeyValueStore
	loader    *catalog.Loader
	favorites *favorites.Store
	state     CatalogState
}

// Open builds the session: storage for the catalog origin and an empty
// favorites store. Favorites are restored with RestoreFavorites and the catalog
// is fetched with LoadCatalog.
func Open(cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	source := opts.Source
	if source == nil {
		source = catalog.NewSource(cfg.Catalog.Source, opts.FS, opts.Client)
	}

	kv := opts.KV
	if kv == nil {
		ls, err := store.NewLocalStore(cfg.Storage.Dir, source.Origin())
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("opened storage", "path", ls.Path())
		kv = ls
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		kv:        kv,
		loader:    catalog.NewLoader(source, cfg.Catalog.Timeout, logger),
		favorites: favorites.NewStore(kv, nil, logger),
		state:     CatalogState{Status: CatalogLoading},
	}

	logger.Info("session opened", "source", source.Origin(), "storage", cfg.Storage.Dir)
	return a, nil
}

// Config returns the session configuration
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the session logger
func (a *App) Logger() *slog.Logger { return a.logger }

// Favorites returns the favorites store
func (a *App) Favorites() *favorites.Store { return a.favorites }

// RestoreFavorites attaches view to the favorites store and renders the
// persisted collection into it. A nil view restores state without rendering.
func (a *App) RestoreFavorites(view favorites.View) favorites.Collection {
	a.favorites.SetView(view)
	return a.favorites.LoadAll()
}

// CatalogState returns the current catalog state
func (a *App) CatalogState() CatalogState { return a.state }

// FetchCatalog performs the single catalog fetch without touching session state.
// It is safe to call off the presentation thread; pass the result to SetCatalog.
func (a *App) FetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return a.loader.Load(ctx)
}

// SetCatalog records the outcome of FetchCatalog
func (a *App) SetCatalog(c *catalog.Catalog, err error) CatalogState {
	if err != nil {
		a.state = CatalogState{Status: CatalogFailed, Err: err}
	} else {
		a.state = CatalogState{Status: CatalogReady, Catalog: c}
	}
	return a.state
}

// LoadCatalog fetches the catalog and records the outcome
func (a *App) LoadCatalog(ctx context.Context) CatalogState {
	c, err := a.FetchCatalog(ctx)
	return a.SetCatalog(c, err)
}

// Search runs the filter over the loaded catalog. Before a successful load it
// returns no results rather than failing.
func (a *App) Search(query string) []domain.Movie {
	return a.state.Catalog.Filter(query)
}

// AddFavorite adds the catalog movie with id to favorites
func (a *App) AddFavorite(id int) (domain.Movie, error) {
	m, err := a.state.Catalog.Get(id)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("movie %d: %w", id, err)
	}
	return m, a.favorites.Add(m)
}

// RemoveFavorite removes the favorite with id
func (a *App) RemoveFavorite(id int) (domain.Movie, error) {
	m, ok := a.favorites.Find(id)
	if !ok {
		return domain.Movie{}, fmt.Errorf("favorite %d: %w", id, domain.ErrMovieNotFound)
	}
	return m, a.favorites.Remove(m)
}

// ClearFavorites removes every favorite and its stored value
func (a *App) ClearFavorites() (int, error) {
	n := a.favorites.Len()
	if err := a.favorites.Clear(); err != nil {
		return 0, err
	}
	return n, nil
}

// Close releases durable storage
func (a *App) Close() error {
	a.logger.Info("session closed", "favorites", a.favorites.Len())
	if err := a.kv.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
