package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flicks/internal/app"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tui/components"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateHelp
)

// Pane identifies which column has keyboard focus
type Pane int

const (
	PaneCatalog Pane = iota
	PaneFavorites
)

// Layout proportions
const (
	CatalogColumnPercent = 60
	MinColumnWidth       = 20

	// Header line plus footer line
	ChromeHeight = 2

	tickInterval = 100 * time.Millisecond
)

// AlreadyFavoriteText is the notice shown when adding a movie twice
const AlreadyFavoriteText = "The movie is on your favorites already"

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Focus Pane

	App *app.App

	// UI Components
	Catalog   *components.CatalogColumn
	Favorites *components.FavoritesColumn
	SearchBar components.SearchBar
	Help      help.Model
	Keys      KeyMap

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    int
	SpinnerFrame int

	// query is the last submitted catalog search
	query string
}

// NewModel creates the application model. The favorites pane is populated
// from durable storage here, before the catalog fetch starts.
func NewModel(a *app.App) Model {
	cfg := a.Config()

	favCol := components.NewFavoritesColumn()
	a.RestoreFavorites(favCol)

	catCol := components.NewCatalogColumn(cfg.UI.ShowDescriptions)
	catCol.SetFavoriteLookup(a.Favorites().Contains)
	catCol.SetFocused(true)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		State:     StateBrowsing,
		Focus:     PaneCatalog,
		App:       a,
		Catalog:   catCol,
		Favorites: favCol,
		SearchBar: components.NewSearchBar(),
		Help:      h,
		Keys:      DefaultKeyMap(),
	}
}

// Init starts the catalog fetch and the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCatalogCmd(m.App),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Catalog.SetSpinnerFrame(m.SpinnerFrame)
		if m.Catalog.Status() != components.CatalogStatusLoading {
			return m, nil
		}
		return m, TickCmd(tickInterval)

	case CatalogLoadedMsg:
		m.App.SetCatalog(msg.Catalog, nil)
		m.logger().Info("catalog ready", "count", msg.Catalog.Len())
		m.applyQuery(m.query)
		return m, nil

	case CatalogFailedMsg:
		m.App.SetCatalog(nil, msg.Err)
		m.Catalog.SetFailed(msg.Err)
		return m.setStatus("catalog unavailable", true)

	case ErrMsg:
		m.logger().Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	if m.State == StateSearching {
		var cmd tea.Cmd
		var submitted bool
		m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
		if submitted {
			m.query = m.SearchBar.Value()
			m.applyQuery(m.query)
		}
		if !m.SearchBar.IsVisible() {
			m.State = StateBrowsing
		}
		return m, cmd
	}

	// Favorites filter input owns the keyboard while typing
	if m.Focus == PaneFavorites && m.Favorites.IsFilterTyping() {
		return m, m.Favorites.Update(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, m.Keys.SwitchPane):
		m.switchPane()
		return m, nil
	}

	if m.Focus == PaneFavorites {
		return m.handleFavoritesKey(msg)
	}
	return m.handleCatalogKey(msg)
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Search):
		if m.Catalog.Status() == components.CatalogStatusFailed {
			return m.setStatus("catalog unavailable", true)
		}
		m.State = StateSearching
		m.SearchBar.Show(m.query)
		return m, nil

	case key.Matches(msg, m.Keys.ClearFilters):
		m.clearFilters()
		return m, nil

	case msg.String() == "esc":
		if m.query != "" {
			m.clearFilters()
		}
		return m, nil

	case key.Matches(msg, m.Keys.AddFavorite):
		return m.addSelected()
	}

	return m, m.Catalog.Update(msg)
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.RemoveFavorite):
		return m.removeSelected()

	case key.Matches(msg, m.Keys.ClearFilters) && !m.Favorites.IsFiltering():
		m.clearFilters()
		return m, nil
	}

	return m, m.Favorites.Update(msg)
}

func (m Model) addSelected() (tea.Model, tea.Cmd) {
	movie, ok := m.Catalog.SelectedMovie()
	if !ok {
		return m, nil
	}

	if _, err := m.App.AddFavorite(movie.ID); err != nil {
		if errors.Is(err, domain.ErrAlreadyFavorite) {
			return m.setStatus(AlreadyFavoriteText, false)
		}
		return m.Update(ErrMsg{Err: err, Context: "add favorite"})
	}
	return m.setStatus(fmt.Sprintf("Added %q to favorites", movie.Title), false)
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	movie, ok := m.Favorites.SelectedMovie()
	if !ok {
		return m, nil
	}

	if _, err := m.App.RemoveFavorite(movie.ID); err != nil {
		return m.Update(ErrMsg{Err: err, Context: "remove favorite"})
	}
	return m.setStatus(fmt.Sprintf("Removed %q from favorites", movie.Title), false)
}

// applyQuery re-renders the catalog pane for query. While the catalog is
// still loading or has failed the pane is left as is.
func (m *Model) applyQuery(query string) {
	if m.App.CatalogState().Status != app.CatalogReady {
		return
	}

	results := m.App.Search(query)
	var suggestions []string
	if len(results) == 0 && m.App.Config().UI.Suggestions > 0 {
		suggestions = m.App.CatalogState().Catalog.Suggest(query, m.App.Config().UI.Suggestions)
	}
	m.Catalog.SetResults(results, query, suggestions)

	if query != "" {
		m.logger().Debug("search", "query", query, "count", len(results))
	}
}

func (m *Model) clearFilters() {
	m.query = ""
	m.applyQuery("")
}

func (m *Model) switchPane() {
	if m.Focus == PaneCatalog {
		m.Focus = PaneFavorites
	} else {
		m.Focus = PaneCatalog
	}
	m.Catalog.SetFocused(m.Focus == PaneCatalog)
	m.Favorites.SetFocused(m.Focus == PaneFavorites)
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(m.statusSeq)
}

func (m Model) logger() *slog.Logger {
	return m.App.Logger()
}

func (m *Model) updateLayout() {
	contentHeight := max(m.Height-ChromeHeight, 0)

	leftWidth := m.Width * CatalogColumnPercent / 100
	if leftWidth < MinColumnWidth {
		leftWidth = MinColumnWidth
	}
	rightWidth := max(m.Width-leftWidth, 0)

	m.Catalog.SetSize(leftWidth, contentHeight)
	m.Favorites.SetSize(rightWidth, contentHeight)
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.Catalog.View(),
		m.Favorites.View(),
	)

	footer := m.renderFooter()
	if m.State == StateSearching {
		footer = m.SearchBar.View(m.Width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, footer)
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("flicks")
	count := styles.SubtitleStyle.Render(fmt.Sprintf("  %s %d favorites", styles.FavoriteChar, m.App.Favorites().Len()))
	return title + count
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else if q := m.query; q != "" {
		left = styles.DimStyle.Render("search: ") + styles.AccentStyle.Render(q) +
			styles.DimStyle.Render("  (c to clear)")
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	body := styles.ModalTitleStyle.Render("Keys") + "\n\n" +
		h.View(m.Keys) + "\n\n" +
		styles.DimStyle.Render("Press any key to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}
