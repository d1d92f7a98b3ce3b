package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/views/files"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView *search.View
	filesView  *files.View

	currentView messages.ViewType
	showHelp    bool

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		searchView:  search.NewView(s, km, ports.Retrieval, ports.Archive, ports.DownloadDir),
		filesView:   files.NewView(s, km, ports.Archive, ports.DownloadDir),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.filesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docseek"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.searchView.SetDimensions(msg.Width, msg.Height)
		a.filesView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ListingLoaded:
		a.filesView, cmd = a.filesView.Update(msg)
		return a, cmd
	}

	return a, a.forward(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Typing into the query box takes precedence over global keys.
	typing := a.currentView == messages.ViewSearch && a.searchView.InputFocused()

	switch {
	case keymap.Matches(msg.String(), a.keymap.Switch):
		if a.currentView == messages.ViewSearch {
			return a, a.switchTo(messages.ViewFiles)
		}
		return a, a.switchTo(messages.ViewSearch)
	case !typing && keymap.Matches(msg.String(), a.keymap.Help):
		a.showHelp = true
		return a, nil
	case a.currentView == messages.ViewFiles && msg.Type == tea.KeyEsc:
		return a, a.switchTo(messages.ViewSearch)
	}

	return a, a.forward(msg)
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	if view == messages.ViewFiles && !a.filesView.Loaded() {
		return a.filesView.Load()
	}
	return nil
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewFiles:
		a.filesView, cmd = a.filesView.Update(msg)
	default:
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.showHelp {
		return a.renderHelp()
	}
	if a.currentView == messages.ViewFiles {
		return a.filesView.View()
	}
	return a.searchView.View()
}

func (a *App) renderHelp() string {
	lines := []string{a.styles.Title.Render("Keys"), ""}
	for _, group := range a.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-8s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, a.styles.Help.Render("Press any key to close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType { return a.currentView }

// SearchView returns the search view.
func (a *App) SearchView() *search.View { return a.searchView }

// FilesView returns the file list view.
func (a *App) FilesView() *files.View { return a.filesView }

// HelpVisible reports whether the help screen is shown.
func (a *App) HelpVisible() bool { return a.showHelp }
