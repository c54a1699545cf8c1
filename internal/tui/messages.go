package tui

import (
	"github.com/mmcdole/flicks/internal/catalog"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogLoadedMsg signals that the catalog fetch succeeded
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
}

// CatalogFailedMsg signals that the catalog fetch failed.
// The session continues with favorites only.
type CatalogFailedMsg struct {
	Err error
}

// TickMsg advances the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status line if it still shows message Seq
type ClearStatusMsg struct {
	Seq int
}
