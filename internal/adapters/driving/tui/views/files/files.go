// Package files provides the archive listing view for the TUI.
package files

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/commands"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// View lists the files on the server.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.DocumentList
	statusbar *status.Bar

	archive     driving.ArchiveService
	downloadDir string
	ctx         context.Context

	ready  bool
	loaded bool
	err    error
}

// NewView creates a file list view. archive may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
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
		list:        list.NewDocumentList(s, "Files on server", "No files on the server."),
		statusbar:   status.NewBar(s, km),
		archive:     archive,
		downloadDir: downloadDir,
		ctx:         context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load fetches the listing.
func (v *View) Load() tea.Cmd {
	v.statusbar.SetBusy("Loading files...")
	return commands.List(v.ctx, v.archive)
}

// Loaded reports whether a listing has been received.
func (v *View) Loaded() bool { return v.loaded }

// Update handles messages for the file list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.ListingLoaded:
		v.loaded = true
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetError(msg.Err)
			return v, nil
		}
		v.err = nil
		items := make([]list.Item, len(msg.Listing))
		for i, id := range msg.Listing {
			items[i] = list.Item{ID: id}
		}
		v.list.SetItems(items)
		v.statusbar.SetFiles(len(items))

	case messages.FetchCompleted:
		if msg.Err != nil {
			v.statusbar.SetError(msg.Err)
		} else {
			v.statusbar.Notify("Saved " + msg.Path)
		}

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Refresh):
			return v, v.Load()
		case msg.Type == tea.KeyEnter:
			item := v.list.SelectedItem()
			if item == nil {
				return v, nil
			}
			v.statusbar.SetBusy("Downloading " + item.ID.Name() + "...")
			return v, commands.Fetch(v.ctx, v.archive, item.ID, v.downloadDir)
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// View renders the file list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("docseek"), ""}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	} else {
		sections = append(sections, v.list.View())
	}
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.ready = true
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Items returns the listed files.
func (v *View) Items() []list.Item { return v.list.Items() }

// Err returns the last listing error, if any.
func (v *View) Err() error { return v.err }

// Status returns the status bar.
func (v *View) Status() *status.Bar { return v.statusbar }
