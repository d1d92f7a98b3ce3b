package files

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docseek/internal/core/domain"
)

type stubArchive struct {
	listing []domain.DocumentID
	err     error
	calls   int
}

func (s *stubArchive) ListFiles(_ context.Context) ([]domain.DocumentID, error) {
	s.calls++
	return s.listing, s.err
}

func (s *stubArchive) Fetch(_ context.Context, id domain.DocumentID, dir string) (string, error) {
	return filepath.Join(dir, id.Name()), nil
}

func (s *stubArchive) Upload(_ context.Context, _, _ string) (domain.UploadResult, error) {
	return domain.UploadResult{}, nil
}

func newReadyView(archive *stubArchive) *View {
	v := NewView(nil, nil, archive, "/downloads")
	v.SetDimensions(80, 24)
	return v
}

func TestView_Load(t *testing.T) {
	archive := &stubArchive{listing: []domain.DocumentID{"/upload/a.txt", "/upload/b.pdf"}}
	v := newReadyView(archive)
	require.False(t, v.Loaded())

	cmd := v.Load()
	assert.Equal(t, status.StateBusy, v.Status().State())

	v.Update(cmd())

	assert.True(t, v.Loaded())
	require.Len(t, v.Items(), 2)
	assert.Equal(t, domain.DocumentID("/upload/a.txt"), v.Items()[0].ID)
	assert.Equal(t, status.StateFiles, v.Status().State())
	assert.Contains(t, v.View(), "b.pdf")
}

func TestView_EmptyListing(t *testing.T) {
	v := newReadyView(&stubArchive{})

	v.Update(v.Load()())

	assert.Contains(t, v.View(), "No files on the server.")
}

func TestView_ListingError(t *testing.T) {
	v := newReadyView(&stubArchive{err: errors.New("connection refused")})

	v.Update(v.Load()())

	assert.True(t, v.Loaded())
	assert.EqualError(t, v.Err(), "connection refused")
	assert.Contains(t, v.View(), "connection refused")
}

func TestView_NoArchive(t *testing.T) {
	v := NewView(nil, nil, nil, "")
	v.SetDimensions(80, 24)

	v.Update(v.Load()())

	assert.Error(t, v.Err())
}

func TestView_Refresh(t *testing.T) {
	archive := &stubArchive{}
	v := newReadyView(archive)
	v.Update(v.Load()())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 2, archive.calls)
}

func TestView_EnterFetchesSelected(t *testing.T) {
	v := newReadyView(&stubArchive{listing: []domain.DocumentID{"/upload/a.txt", "/upload/b.pdf"}})
	v.Update(v.Load()())
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.FetchCompleted)
	require.True(t, ok)
	assert.Equal(t, domain.DocumentID("/upload/b.pdf"), msg.ID)

	v.Update(msg)
	assert.Equal(t, "Saved "+filepath.Join("/downloads", "b.pdf"), v.Status().Message())
}

func TestView_EnterOnEmptyListing(t *testing.T) {
	v := newReadyView(&stubArchive{})
	v.Update(v.Load()())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}
