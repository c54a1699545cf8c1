package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	SwitchPane key.Binding

	// Actions
	AddFavorite     key.Binding
	RemoveFavorite  key.Binding
	Search          key.Binding
	ClearFilters    key.Binding
	FilterFavorites key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		AddFavorite: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "add favorite"),
		),
		RemoveFavorite: key.NewBinding(
			key.WithKeys("x", "d", "delete"),
			key.WithHelp("x", "remove favorite"),
		),
		Search: key.NewBinding(
			key.WithKeys("s", "/"),
			key.WithHelp("s", "search"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		FilterFavorites: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter favorites"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddFavorite, k.RemoveFavorite, k.Search, k.ClearFilters, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane},
		{k.AddFavorite, k.RemoveFavorite, k.FilterFavorites},
		{k.Search, k.ClearFilters},
		{k.Help, k.Quit},
	}
}
