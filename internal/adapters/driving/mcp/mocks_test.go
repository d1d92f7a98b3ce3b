package mcp

import (
	"context"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	result    *domain.RetrievalResult
	image     *domain.ImageSearchResult
	err       error
	lastQuery string
}

func (m *mockRetrievalService) Retrieve(_ context.Context, query string) (*domain.RetrievalResult, error) {
	m.lastQuery = query
	return m.result, m.err
}

func (m *mockRetrievalService) SearchImage(_ context.Context, _ string) (*domain.ImageSearchResult, error) {
	return m.image, m.err
}

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	listing []domain.DocumentID
	files   map[domain.DocumentID]string
	err     error
}

func (m *mockArchiveService) ListFiles(_ context.Context) ([]domain.DocumentID, error) {
	return m.listing, m.err
}

func (m *mockArchiveService) Fetch(_ context.Context, id domain.DocumentID, destDir string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	content, ok := m.files[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	local := filepath.Join(destDir, id.Name())
	return local, os.WriteFile(local, []byte(content), 0600)
}

func (m *mockArchiveService) Upload(_ context.Context, _, name string) (domain.UploadResult, error) {
	return domain.UploadResult{ID: domain.JoinID("/upload", name), Status: domain.UploadSucceeded}, m.err
}
