// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docseek/internal/core/domain"
)

// Item is one row of the list.
type Item struct {
	ID domain.DocumentID

	// Tags are short labels shown after the identifier, e.g. "name".
	Tags []string
}

// DocumentList displays archive documents in a navigable list.
type DocumentList struct {
	title    string
	empty    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewDocumentList creates an empty list. empty is shown when there are no items.
func NewDocumentList(s *styles.Styles, title, empty string) *DocumentList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &DocumentList{
		title:  title,
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles navigation keys.
func (l *DocumentList) Update(msg tea.Msg) (*DocumentList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *DocumentList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	lines := make([]string, 0, len(l.items)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items))), "")

	visible := max(l.height-2, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.items))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (l *DocumentList) renderItem(i int) string {
	item := l.items[i]
	name := item.ID.String()
	if limit := max(l.width-20, 10); len(name) > limit {
		name = "..." + name[len(name)-limit+3:]
	}

	if i == l.selected {
		line := l.styles.Selected.Render("> " + name)
		if len(item.Tags) > 0 {
			line += " " + l.styles.Tag.Render("["+strings.Join(item.Tags, ", ")+"]")
		}
		return line
	}

	line := l.styles.Normal.Render("  " + name)
	if len(item.Tags) > 0 {
		line += " " + l.styles.Tag.Render("["+strings.Join(item.Tags, ", ")+"]")
	}
	return line
}

// SetItems replaces the items and resets the selection.
func (l *DocumentList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *DocumentList) Items() []Item { return l.items }

// Selected returns the index of the selected item.
func (l *DocumentList) Selected() int { return l.selected }

// SelectedItem returns the selected item, or nil if the list is empty.
func (l *DocumentList) SelectedItem() *Item {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves the selection up.
func (l *DocumentList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *DocumentList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *DocumentList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *DocumentList) Count() int { return len(l.items) }
