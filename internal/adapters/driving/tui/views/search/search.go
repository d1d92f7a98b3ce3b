// Package search provides the search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/commands"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// View is the query box, the match list and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.DocumentList
	statusbar *status.Bar

	retrieval   driving.RetrievalService
	archive     driving.ArchiveService
	downloadDir string
	ctx         context.Context

	width      int
	height     int
	ready      bool
	focusInput bool
	result     *domain.RetrievalResult
	err        error
}

// NewView creates a new search view. archive may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	retrieval driving.RetrievalService,
	archive driving.ArchiveService,
	downloadDir string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		keymap:      km,
		input:       input.NewSearchInput(s),
		list:        list.NewDocumentList(s, "Matches", "No matches"),
		statusbar:   status.NewBar(s, km),
		retrieval:   retrieval,
		archive:     archive,
		downloadDir: downloadDir,
		ctx:         context.Background(),
		width:       80,
		height:      24,
		focusInput:  true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.FetchCompleted:
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
		} else {
			v.statusbar.Notify("Saved " + msg.Path)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.statusbar.SetBusy("Searching...")
			return v, commands.Retrieve(v.ctx, v.retrieval, query)
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case msg.Type == tea.KeyEnter:
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		v.statusbar.SetBusy("Downloading " + item.ID.Name() + "...")
		return v, commands.Fetch(v.ctx, v.archive, item.ID, v.downloadDir)

	case msg.Type == tea.KeyEsc, keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return
	}

	v.err = nil
	v.result = msg.Result
	v.list.SetItems(resultItems(msg.Result))
	v.statusbar.SetResults(v.list.Count())

	if v.list.Count() > 0 {
		v.focusInput = false
		v.input.Blur()
	}
}

// resultItems lists matches in identifier order, tagged with the tiers that found them.
func resultItems(result *domain.RetrievalResult) []list.Item {
	if result == nil {
		return nil
	}
	ids := result.Matches.Sorted()
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		var tags []string
		if result.NameMatches.Has(id) {
			tags = append(tags, "name")
		}
		if result.ContentMatches.Has(id) {
			tags = append(tags, "content")
		}
		items = append(items, list.Item{ID: id, Tags: tags})
	}
	return items
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("docseek"), "",
		v.input.View(), "",
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View())

	if v.result != nil && len(v.result.Skipped) > 0 {
		sections = append(sections, "", v.styles.Muted.Render(skippedNote(len(v.result.Skipped))))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func skippedNote(n int) string {
	if n == 1 {
		return "1 document could not be read"
	}
	return fmt.Sprintf("%d documents could not be read", n)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool { return v.ready }

// Query returns the current query text.
func (v *View) Query() string { return v.input.Value() }

// SetQuery sets the query text.
func (v *View) SetQuery(query string) { v.input.SetValue(query) }

// Items returns the listed matches.
func (v *View) Items() []list.Item { return v.list.Items() }

// SelectedIndex returns the index of the selected match.
func (v *View) SelectedIndex() int { return v.list.Selected() }

// Err returns the last search error, if any.
func (v *View) Err() error { return v.err }

// InputFocused returns whether the query box has focus.
func (v *View) InputFocused() bool { return v.focusInput }

// Status returns the status bar.
func (v *View) Status() *status.Bar { return v.statusbar }
