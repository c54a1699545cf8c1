package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/favorites"
	"github.com/mmcdole/flicks/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// FavoritesColumn renders the favorites collection. It is the favorites.View
// the store drives: entries change only through Apply.
type FavoritesColumn struct {
	listCursor

	entries []domain.Movie

	width   int
	height  int
	focused bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into entries
}

var _ favorites.View = (*FavoritesColumn)(nil)

// NewFavoritesColumn creates an empty favorites column
func NewFavoritesColumn() *FavoritesColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &FavoritesColumn{filterInput: ti}
}

// Apply renders one store delta. Removing a key that is not rendered does nothing.
func (c *FavoritesColumn) Apply(d favorites.Delta) {
	switch d.Op {
	case favorites.OpInsertFront:
		c.entries = append([]domain.Movie{d.Movie}, c.entries...)
	case favorites.OpAppend:
		c.entries = append(c.entries, d.Movie)
	case favorites.OpRemove:
		idx := c.indexOf(d.Key)
		if idx < 0 {
			return
		}
		c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	}

	if c.filterActive {
		c.refilter()
	}
	c.clamp(c.ItemCount())
}

func (c *FavoritesColumn) indexOf(key string) int {
	for i, m := range c.entries {
		if m.ElementID() == key {
			return i
		}
	}
	return -1
}

// Keys returns the rendered entry keys in display order (unfiltered)
func (c *FavoritesColumn) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, m := range c.entries {
		keys[i] = m.ElementID()
	}
	return keys
}

// ItemCount returns the number of visible rows
func (c *FavoritesColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.entries)
}

// SelectedMovie returns the favorite under the cursor
func (c *FavoritesColumn) SelectedMovie() (domain.Movie, bool) {
	if c.cursor >= c.ItemCount() {
		return domain.Movie{}, false
	}
	return c.entries[c.mapIndex(c.cursor)], true
}

func (c *FavoritesColumn) SetFocused(focused bool) { c.focused = focused }

func (c *FavoritesColumn) IsFocused() bool { return c.focused }

func (c *FavoritesColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
}

// favoriteRowHeight is title + genres
const favoriteRowHeight = 2

func (c *FavoritesColumn) recalcMaxVisible() {
	interior := c.height - BorderHeight - ScrollIndicatorLines - 1 // -1 for title
	// Reserve space for filter bar when active
	if c.filterActive {
		interior--
	}
	c.setMaxVisible(interior, favoriteRowHeight)
}

// ToggleFilter activates the filter input
func (c *FavoritesColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *FavoritesColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *FavoritesColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *FavoritesColumn) ClearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
	c.clamp(c.ItemCount())
}

func (c *FavoritesColumn) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	// Handle filter input when active AND focused (typing mode)
	if c.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				c.ClearFilter()
				return nil
			case "enter":
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.ClearFilter()
					return nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if c.filterActive {
			switch {
			case keyMsg.String() == "esc":
				c.ClearFilter()
				return nil
			case key.Matches(keyMsg, listKeys.Filter):
				// Re-activate filter input
				c.filterInput.Focus()
				return nil
			}
		} else if key.Matches(keyMsg, listKeys.Filter) {
			c.ToggleFilter()
			return nil
		}
		c.handleKey(keyMsg, c.ItemCount())
	}
	return nil
}

// applyFilter runs the filter after the query text changed
func (c *FavoritesColumn) applyFilter() {
	c.refilter()

	// Reset cursor to first match
	c.reset()
}

// refilter recomputes the matches for the current query, leaving the cursor alone
func (c *FavoritesColumn) refilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	lowerTitles := make([]string, len(c.entries))
	for i, m := range c.entries {
		lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}
}

func (c *FavoritesColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

func (c *FavoritesColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *FavoritesColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(fmt.Sprintf("Favorites (%d)", len(c.entries)), itemWidth))

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No favorites yet")
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	start, end := c.window(count)
	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, c.renderFavorite(c.entries[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	header := " "
	if start > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(rows, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *FavoritesColumn) renderFavorite(m domain.Movie, selected bool, width int) string {
	red := styles.Red
	avail := max(width-6, 5)

	return styles.RenderListRow([]styles.RowPart{
		{Text: "✕ ", Foreground: &red},
		{Text: styles.Truncate(m.Title, avail), Bold: true},
	}, selected, width) + "\n" + styles.RenderListRow([]styles.RowPart{
		{Text: "  "},
		{Text: styles.Truncate(m.GenreLine(), avail), Foreground: &styles.Blue},
	}, selected, width)
}

func (c *FavoritesColumn) renderFilterBar() string {
	input := c.filterInput.View()

	// Show match count
	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.entries)))
	}
	return input + countStr
}
