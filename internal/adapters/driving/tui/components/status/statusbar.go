// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/styles"
)

// State is what the bar reports on the left.
type State string

const (
	StateReady    State = "ready"
	StateBusy     State = "busy"
	StateError    State = "error"
	StateResults  State = "results"
	StateFiles    State = "files"
	StateNotified State = "notified"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	count   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// StatusBar pads one cell on each side.
	padding := max(s.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateBusy:
		return s.styles.Muted.Render(s.message)
	case StateError:
		return s.styles.Error.Render("Error: " + s.message)
	case StateNotified:
		return s.styles.Success.Render(s.message)
	case StateResults:
		return s.styles.Normal.Render(fmt.Sprintf("%d matches", s.count))
	case StateFiles:
		return s.styles.Normal.Render(fmt.Sprintf("%d files", s.count))
	default:
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateResults:
		bindings = s.keymap.ResultsHelp()
	case StateFiles:
		bindings = s.keymap.FilesHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetBusy shows an in-progress message.
func (s *Bar) SetBusy(message string) {
	s.state, s.message = StateBusy, message
}

// SetError shows an error.
func (s *Bar) SetError(err error) {
	s.state, s.message = StateError, err.Error()
}

// Notify shows a success message.
func (s *Bar) Notify(message string) {
	s.state, s.message = StateNotified, message
}

// SetResults shows a match count.
func (s *Bar) SetResults(count int) {
	s.state, s.message, s.count = StateResults, "", count
}

// SetFiles shows a file count.
func (s *Bar) SetFiles(count int) {
	s.state, s.message, s.count = StateFiles, "", count
}

// Clear resets the bar.
func (s *Bar) Clear() {
	s.state, s.message, s.count = StateReady, "", 0
}

// State returns the current state.
func (s *Bar) State() State { return s.state }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) { s.width = width }
