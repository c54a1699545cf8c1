// Package favorites owns the user's favorites collection: pure transitions on
// Collection, the JSON codec used for durable storage, and Store, which keeps
// storage and a rendered View consistent with the collection.
package favorites

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/flicks/internal/domain"
)

// StorageKey is the single durable storage key the collection lives under
const StorageKey = "favorites"

// View is the rendering adapter a Store drives.
// Apply must treat OpRemove for an unknown key as a no-op.
type View interface {
	Apply(d Delta)
}

// ViewFunc adapts a function to View
type ViewFunc func(d Delta)

func (f ViewFunc) Apply(d Delta) { f(d) }

type discardView struct{}

func (discardView) Apply(Delta) {}

// Store maintains the favorites collection and mirrors every mutation to
// durable storage in full. It is not safe for concurrent use; the
// presentation loop owns it.
type Store struct {
	kv     domain.KeyValueStore
	view   View
	logger *slog.Logger
	items  Collection
}

// NewStore creates an empty store. Call LoadAll to restore persisted state.
// A nil view discards deltas; a nil logger uses slog.Default().
func NewStore(kv domain.KeyValueStore, view View, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if view == nil {
		view = discardView{}
	}
	return &Store{kv: kv, view: view, logger: logger, items: Collection{}}
}

// SetView replaces the rendering adapter. Already-rendered state is not replayed.
func (s *Store) SetView(view View) {
	if view == nil {
		view = discardView{}
	}
	s.view = view
}

// LoadAll restores the collection from durable storage and renders every entry
// in collection order. Missing or malformed data leaves the collection empty.
func (s *Store) LoadAll() Collection {
	data, found, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Error("failed to read favorites, starting empty", "error", err)
	}
	items, ok := Decode(data)
	if found && !ok {
		s.logger.Warn("ignoring malformed favorites value", "bytes", len(data))
	}

	s.items = items
	for _, d := range Render(items) {
		s.view.Apply(d)
	}

	s.logger.Debug("loaded favorites", "count", len(items))
	return s.Items()
}

// Add inserts movie at the front of the collection, persists the collection and
// renders the new entry. A duplicate ID returns domain.ErrAlreadyFavorite and
// changes nothing.
func (s *Store) Add(movie domain.Movie) error {
	next, delta, err := Add(s.items, movie.Clone())
	if err != nil {
		s.logger.Debug("rejected favorite", "movieID", movie.ID, "error", err)
		return err
	}

	if err := s.persist(next); err != nil {
		return err
	}

	s.items = next
	s.view.Apply(delta)
	s.logger.Info("added favorite", "movieID", movie.ID, "count", len(next))
	return nil
}

// Remove drops every entry with movie's ID, persists the collection and removes
// the rendered entry. Removing a movie that is not a favorite still rewrites
// storage; the view ignores the unknown key.
func (s *Store) Remove(movie domain.Movie) error {
	next, delta := Remove(s.items, movie)

	if err := s.persist(next); err != nil {
		return err
	}

	s.items = next
	s.view.Apply(delta)
	s.logger.Info("removed favorite", "movieID", movie.ID, "count", len(next))
	return nil
}

// Clear removes every favorite and deletes the stored value. The view gets one
// remove delta per entry, newest first.
func (s *Store) Clear() error {
	if err := s.kv.Delete(StorageKey); err != nil {
		s.logger.Error("failed to clear favorites", "error", err)
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	cleared := s.items
	s.items = Collection{}
	for _, m := range cleared {
		s.view.Apply(Delta{Op: OpRemove, Movie: m, Key: m.ElementID()})
	}
	s.logger.Info("cleared favorites", "count", len(cleared))
	return nil
}

// Contains reports whether a movie with id is a favorite
func (s *Store) Contains(id int) bool {
	return s.items.Contains(id)
}

// Find returns the favorite with id
func (s *Store) Find(id int) (domain.Movie, bool) {
	for _, m := range s.items {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return domain.Movie{}, false
}

// Items returns a deep copy of the collection, newest first
func (s *Store) Items() Collection {
	return Collection(domain.CloneMovies(s.items))
}

// Len returns the number of favorites
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) persist(c Collection) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		s.logger.Error("failed to persist favorites", "error", err)
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
