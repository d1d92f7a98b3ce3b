// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/styles"
)

const (
	defaultWidth = 50
	minWidth     = 20
	labelWidth   = 10
)

// SearchInput is the query box.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a focused query box.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Words from a file name or its text..."
	ti.CharLimit = 512
	ti.Width = defaultWidth
	ti.Focus()

	return &SearchInput{textinput: ti, styles: s, width: defaultWidth}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the text input.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the labelled input.
func (s *SearchInput) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.styles.Title.Render("Find: "),
		s.styles.InputField.Render(s.textinput.View()),
	)
}

// Value returns the current input value.
func (s *SearchInput) Value() string { return s.textinput.Value() }

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) { s.textinput.SetValue(value) }

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd { return s.textinput.Focus() }

// Blur removes focus from the input.
func (s *SearchInput) Blur() { s.textinput.Blur() }

// Focused reports whether the input has focus.
func (s *SearchInput) Focused() bool { return s.textinput.Focused() }

// SetWidth sets the overall width including the label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-labelWidth, minWidth)
}

// Width returns the current width.
func (s *SearchInput) Width() int { return s.width }
