package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

// Empty-state text shown when a search matches nothing
const (
	NoResultsBigText = "¡Oppps!"
	NoResultsText    = "There is no results"
)

// CatalogStatus is what the catalog column is currently showing
type CatalogStatus int

const (
	CatalogStatusLoading CatalogStatus = iota
	CatalogStatusResults
	CatalogStatusNoResults
	CatalogStatusFailed
)

// CatalogColumn shows catalog movies (all of them or a search result) with an
// "add to favorites" action on the selected row.
type CatalogColumn struct {
	listCursor

	movies      []domain.Movie
	status      CatalogStatus
	query       string
	suggestions []string
	err         error

	// isFavorite marks rows already in favorites; nil marks nothing
	isFavorite func(id int) bool

	showDescriptions bool
	spinnerFrame     int

	width   int
	height  int
	focused bool
}

// NewCatalogColumn creates an empty catalog column in the loading state
func NewCatalogColumn(showDescriptions bool) *CatalogColumn {
	return &CatalogColumn{status: CatalogStatusLoading, showDescriptions: showDescriptions}
}

// SetFavoriteLookup sets the predicate used to mark favorited rows
func (c *CatalogColumn) SetFavoriteLookup(fn func(id int) bool) {
	c.isFavorite = fn
}

// SetResults replaces the rows. An empty result renders the no-results block.
func (c *CatalogColumn) SetResults(movies []domain.Movie, query string, suggestions []string) {
	c.movies = movies
	c.query = query
	c.suggestions = suggestions
	c.err = nil
	c.status = CatalogStatusResults
	if len(movies) == 0 {
		c.status = CatalogStatusNoResults
	}
	c.reset()
}

// SetFailed shows the catalog load error in place of rows
func (c *CatalogColumn) SetFailed(err error) {
	c.movies = nil
	c.suggestions = nil
	c.err = err
	c.status = CatalogStatusFailed
	c.reset()
}

// Status returns what the column is showing
func (c *CatalogColumn) Status() CatalogStatus { return c.status }

// Query returns the query the current rows were produced by ("" = full catalog)
func (c *CatalogColumn) Query() string { return c.query }

// Movies returns the rows currently shown
func (c *CatalogColumn) Movies() []domain.Movie { return c.movies }

// SelectedMovie returns the movie under the cursor
func (c *CatalogColumn) SelectedMovie() (domain.Movie, bool) {
	if c.status != CatalogStatusResults || c.cursor >= len(c.movies) {
		return domain.Movie{}, false
	}
	return c.movies[c.cursor], true
}

// SelectedIndex returns the cursor position
func (c *CatalogColumn) SelectedIndex() int { return c.cursor }

func (c *CatalogColumn) SetSpinnerFrame(frame int) { c.spinnerFrame = frame }

func (c *CatalogColumn) SetFocused(focused bool) { c.focused = focused }

func (c *CatalogColumn) IsFocused() bool { return c.focused }

func (c *CatalogColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	// Interior = total - border - title line - scroll indicators
	c.setMaxVisible(height-BorderHeight-1-ScrollIndicatorLines, c.rowHeight())
}

// rowHeight is title + genres (+ description) + blank separator
func (c *CatalogColumn) rowHeight() int {
	if c.showDescriptions {
		return 4
	}
	return 3
}

// Update handles navigation keys when focused
func (c *CatalogColumn) Update(msg tea.Msg) tea.Cmd {
	if !c.focused || c.status != CatalogStatusResults {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		c.handleKey(keyMsg, len(c.movies))
	}
	return nil
}

func (c *CatalogColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *CatalogColumn) title() string {
	switch c.status {
	case CatalogStatusResults, CatalogStatusNoResults:
		if c.query != "" {
			return fmt.Sprintf("Movies · %q (%d)", c.query, len(c.movies))
		}
		return fmt.Sprintf("Movies (%d)", len(c.movies))
	default:
		return "Movies"
	}
}

func (c *CatalogColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title(), itemWidth))

	switch c.status {
	case CatalogStatusLoading:
		spinner := styles.SpinnerFrames[c.spinnerFrame%len(styles.SpinnerFrames)]
		return titleLine + "\n\n" + styles.DimStyle.Render(spinner+" Loading catalog...")

	case CatalogStatusFailed:
		lines := []string{titleLine, "", styles.ErrorStyle.Render("Could not load the catalog")}
		if c.err != nil {
			for _, l := range styles.Wrap(c.err.Error(), itemWidth-2) {
				lines = append(lines, styles.DimStyle.Render(l))
			}
		}
		lines = append(lines, "", styles.DimStyle.Render("Favorites are still available."))
		return strings.Join(lines, "\n")

	case CatalogStatusNoResults:
		return titleLine + "\n\n" + c.renderNoResults(itemWidth)
	}

	count := len(c.movies)
	start, end := c.window(count)

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, c.renderMovie(c.movies[i], i == c.cursor, itemWidth))
	}

	// ALWAYS reserve space for header and footer to prevent layout shifts
	header := " "
	if start > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(rows, "\n") + "\n" + footer
}

func (c *CatalogColumn) renderNoResults(width int) string {
	block := []string{
		styles.EmptyBigTextStyle.Render(NoResultsBigText),
		styles.EmptyTextStyle.Render(NoResultsText),
	}
	if len(c.suggestions) > 0 {
		block = append(block, "", styles.DimStyle.Render("Did you mean:"))
		for _, s := range c.suggestions {
			block = append(block, styles.AccentStyle.Render("  "+styles.Truncate(s, width-4)))
		}
	}
	block = append(block, "", styles.DimStyle.Render("Press c to clear filters"))

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(block, "\n"))
}

func (c *CatalogColumn) renderMovie(m domain.Movie, selected bool, width int) string {
	marker := "  "
	markerFg := styles.MarqueeGold
	if c.isFavorite != nil && c.isFavorite(m.ID) {
		marker = styles.FavoriteChar + " "
	}

	// Available space: width - marker(2) - margins(2)
	avail := max(width-4, 5)

	lines := []string{
		styles.RenderListRow([]styles.RowPart{
			{Text: marker, Foreground: &markerFg},
			{Text: styles.Truncate(m.Title, avail), Bold: true},
		}, selected, width),
		styles.RenderListRow([]styles.RowPart{
			{Text: "  "},
			{Text: styles.Truncate(m.GenreLine(), avail), Foreground: &styles.Blue},
		}, selected, width),
	}
	if c.showDescriptions {
		dim := styles.DimGray
		lines = append(lines, styles.RenderListRow([]styles.RowPart{
			{Text: "  "},
			{Text: styles.Truncate(m.Description, avail), Foreground: &dim},
		}, selected, width))
	}
	return strings.Join(lines, "\n") + "\n"
}
