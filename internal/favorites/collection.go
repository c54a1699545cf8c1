package favorites

import (
	"github.com/mmcdole/flicks/internal/domain"
)

// Op identifies the kind of change a Delta applies to a rendered favorites view
type Op int

const (
	// OpInsertFront renders a new entry before all existing entries
	OpInsertFront Op = iota
	// OpAppend renders an entry after all existing entries (initial load)
	OpAppend
	// OpRemove removes the entry registered under Delta.Key, if any
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpInsertFront:
		return "insert-front"
	case OpAppend:
		return "append"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Delta describes one change to the rendered favorites view
type Delta struct {
	Op    Op
	Movie domain.Movie // Entry to render (insert/append); the removed movie for OpRemove
	Key   string       // View identity key (see domain.ElementID)
}

// Collection is the ordered favorites list, newest first, unique by movie ID.
// Transitions never modify the receiver; they return a new Collection.
type Collection []domain.Movie

// Contains reports whether a movie with id is in the collection
func (c Collection) Contains(id int) bool {
	for _, m := range c {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Add returns the collection with movie at the front and the matching view delta.
// A movie whose ID is already present is rejected with domain.ErrAlreadyFavorite
// and the original collection is returned unchanged.
func Add(c Collection, movie domain.Movie) (Collection, Delta, error) {
	if c.Contains(movie.ID) {
		return c, Delta{}, domain.ErrAlreadyFavorite
	}

	next := make(Collection, 0, len(c)+1)
	next = append(next, movie)
	next = append(next, c...)

	return next, Delta{Op: OpInsertFront, Movie: movie, Key: movie.ElementID()}, nil
}

// Remove returns the collection without any movie sharing movie.ID, and the
// delta removing its rendered entry. Removing an absent movie still yields a
// delta; applying it to a view without that entry is a no-op.
func Remove(c Collection, movie domain.Movie) (Collection, Delta) {
	next := make(Collection, 0, len(c))
	for _, m := range c {
		if m.ID != movie.ID {
			next = append(next, m)
		}
	}
	return next, Delta{Op: OpRemove, Movie: movie, Key: movie.ElementID()}
}

// Render returns the deltas that draw the whole collection into an empty view, in order
func Render(c Collection) []Delta {
	deltas := make([]Delta, len(c))
	for i, m := range c {
		deltas[i] = Delta{Op: OpAppend, Movie: m, Key: m.ElementID()}
	}
	return deltas
}
