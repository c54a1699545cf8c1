package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

var listKeys = DefaultListKeyMap()

// listCursor tracks selection and scroll offset for a list of fixed-height rows
type listCursor struct {
	cursor     int
	offset     int
	maxVisible int // rows that fit, not lines
}

// handleKey moves the cursor for navigation keys. Returns true if the key was consumed.
func (l *listCursor) handleKey(msg tea.KeyMsg, count int) bool {
	if count == 0 {
		return false
	}

	switch {
	case key.Matches(msg, listKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
			l.ensureVisible()
		}
	case key.Matches(msg, listKeys.Up):
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case key.Matches(msg, listKeys.Home):
		l.cursor = 0
		l.offset = 0
	case key.Matches(msg, listKeys.End):
		l.cursor = count - 1
		l.ensureVisible()
	case key.Matches(msg, listKeys.HalfDown):
		l.cursor += max(l.maxVisible/2, 1)
		if l.cursor >= count {
			l.cursor = count - 1
		}
		l.ensureVisible()
	case key.Matches(msg, listKeys.HalfUp):
		l.cursor -= max(l.maxVisible/2, 1)
		if l.cursor < 0 {
			l.cursor = 0
		}
		l.ensureVisible()
	default:
		return false
	}
	return true
}

// setMaxVisible recalculates how many rows fit in interiorLines
func (l *listCursor) setMaxVisible(interiorLines, rowHeight int) {
	if rowHeight < 1 {
		rowHeight = 1
	}
	l.maxVisible = interiorLines / rowHeight
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.ensureVisible()
}

func (l *listCursor) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// clamp keeps the cursor inside a list that may have shrunk
func (l *listCursor) clamp(count int) {
	if count == 0 {
		l.cursor = 0
		l.offset = 0
		return
	}
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
	l.ensureVisible()
}

func (l *listCursor) reset() {
	l.cursor = 0
	l.offset = 0
}

// window returns the visible [start, end) range
func (l *listCursor) window(count int) (int, int) {
	end := l.offset + l.maxVisible
	if l.maxVisible <= 0 || end > count {
		end = count
	}
	start := l.offset
	if start > end {
		start = end
	}
	return start, end
}
