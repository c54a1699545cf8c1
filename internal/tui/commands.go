package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/app"
)

// Command factories for async operations

// statusTimeout is how long a status message stays visible
const statusTimeout = 4 * time.Second

// LoadCatalogCmd performs the single catalog fetch off the update loop.
// The result is recorded on the session when the message is handled.
func LoadCatalogCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		c, err := a.FetchCatalog(context.Background())
		if err != nil {
			return CatalogFailedMsg{Err: err}
		}
		return CatalogLoadedMsg{Catalog: c}
	}
}

// TickCmd returns a command that sends a tick after the specified duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears status message seq after statusTimeout
func ClearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
