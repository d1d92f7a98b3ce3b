package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docseek/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *MockRetrievalService, *MockArchiveService) {
	t.Helper()
	retrieval := &MockRetrievalService{}
	archive := &MockArchiveService{Listing: []domain.DocumentID{"/upload/a.txt", "/upload/b.pdf"}}

	app, err := NewApp(&Ports{Retrieval: retrieval, Archive: archive, DownloadDir: t.TempDir()})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app, retrieval, archive
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Retrieval: &MockRetrievalService{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingRetrievalService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Retrieval: &MockRetrievalService{}})
	require.NoError(t, err)
	assert.Equal(t, "Initialising...", app.View())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.SearchView().Ready())
	assert.Contains(t, app.View(), "Find:")
}

func TestApp_Quit(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_SearchFlow(t *testing.T) {
	app, retrieval, _ := newTestApp(t)
	retrieval.Result = &domain.RetrievalResult{
		Matches:        domain.NewMatchSet("/upload/alpha.txt"),
		NameMatches:    domain.NewMatchSet(),
		ContentMatches: domain.NewMatchSet("/upload/alpha.txt"),
	}

	app.SearchView().SetQuery("invoice")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, []string{"invoice"}, retrieval.Queries)

	app.Update(completed)

	items := app.SearchView().Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.DocumentID("/upload/alpha.txt"), items[0].ID)
	assert.Contains(t, app.View(), "alpha.txt")
}

func TestApp_TabSwitchesToFilesAndLoads(t *testing.T) {
	app, _, archive := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, messages.ViewFiles, app.CurrentView())
	require.NotNil(t, cmd)

	app.Update(cmd())

	assert.Len(t, app.FilesView().Items(), len(archive.Listing))
	assert.Contains(t, app.View(), "b.pdf")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_SwitchBackLoadsOnce(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewFiles})
	require.NotNil(t, cmd)
	app.Update(cmd())

	app.Update(messages.ViewChanged{View: messages.ViewSearch})
	_, cmd = app.Update(messages.ViewChanged{View: messages.ViewFiles})

	assert.Nil(t, cmd)
}

func TestApp_EscLeavesFiles(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewFiles})

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_ListingErrorShown(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewFiles})

	app.Update(messages.ListingLoaded{Err: errors.New("connection refused")})

	assert.Contains(t, app.View(), "connection refused")
}

func TestApp_FetchCompletedGoesToCurrentView(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewFiles})

	app.Update(messages.FetchCompleted{ID: "/upload/a.txt", Path: "/tmp/a.txt"})

	assert.Equal(t, "Saved /tmp/a.txt", app.FilesView().Status().Message())
}

func TestApp_Help(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewFiles})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	require.True(t, app.HelpVisible())
	assert.Contains(t, app.View(), "Keys")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, app.HelpVisible())
}

func TestApp_HelpKeyTypedIntoQuery(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})

	assert.False(t, app.HelpVisible())
	assert.Equal(t, "?", app.SearchView().Query())
}
