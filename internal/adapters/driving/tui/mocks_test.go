package tui

import (
	"context"
	"path/filepath"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// MockRetrievalService is a mock implementation of driving.RetrievalService.
type MockRetrievalService struct {
	Result  *domain.RetrievalResult
	Err     error
	Queries []string
}

var _ driving.RetrievalService = (*MockRetrievalService)(nil)

func (m *MockRetrievalService) Retrieve(_ context.Context, query string) (*domain.RetrievalResult, error) {
	m.Queries = append(m.Queries, query)
	return m.Result, m.Err
}

func (m *MockRetrievalService) SearchImage(_ context.Context, _ string) (*domain.ImageSearchResult, error) {
	return &domain.ImageSearchResult{NoText: true}, nil
}

// MockArchiveService is a mock implementation of driving.ArchiveService.
type MockArchiveService struct {
	Listing []domain.DocumentID
	Err     error
	Fetched []domain.DocumentID
}

var _ driving.ArchiveService = (*MockArchiveService)(nil)

func (m *MockArchiveService) ListFiles(_ context.Context) ([]domain.DocumentID, error) {
	return m.Listing, m.Err
}

func (m *MockArchiveService) Fetch(_ context.Context, id domain.DocumentID, destDir string) (string, error) {
	m.Fetched = append(m.Fetched, id)
	return filepath.Join(destDir, id.Name()), m.Err
}

func (m *MockArchiveService) Upload(_ context.Context, _, name string) (domain.UploadResult, error) {
	return domain.UploadResult{ID: domain.JoinID("/upload", name), Status: domain.UploadSucceeded}, nil
}
