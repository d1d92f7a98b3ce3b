package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockArchive is an in-memory archive holding file contents by identifier.
type mockArchive struct {
	mu          sync.Mutex
	order       []domain.DocumentID
	files       map[domain.DocumentID][]byte
	connectErr  error
	listErr     error
	downloadErr map[domain.DocumentID]error
	uploadErr   error
	// storeOnUploadErr stores the file even when uploadErr is returned.
	storeOnUploadErr bool
	connects         int
	downloads        int
	closed           int
}

func newMockArchive() *mockArchive {
	return &mockArchive{
		files:       make(map[domain.DocumentID][]byte),
		downloadErr: make(map[domain.DocumentID]error),
	}
}

func (m *mockArchive) put(id domain.DocumentID, content string) *mockArchive {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[id]; !ok {
		m.order = append(m.order, id)
	}
	m.files[id] = []byte(content)
	return m
}

func (m *mockArchive) Connect(_ context.Context) (driven.ArchiveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	m.connects++
	return &mockSession{archive: m}, nil
}

type mockSession struct {
	archive *mockArchive
}

func (s *mockSession) List(_ context.Context, dir string) ([]domain.DocumentID, error) {
	m := s.archive
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []domain.DocumentID
	for _, id := range m.order {
		if strings.HasPrefix(string(id), prefix) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *mockSession) Download(_ context.Context, id domain.DocumentID, destPath string) error {
	m := s.archive
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.downloadErr[id]; err != nil {
		return err
	}
	content, ok := m.files[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.downloads++
	return os.WriteFile(destPath, content, 0600)
}

func (s *mockSession) Upload(_ context.Context, srcPath string, id domain.DocumentID) error {
	m := s.archive
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if m.uploadErr != nil {
		if m.storeOnUploadErr {
			m.put(id, string(content))
		}
		return m.uploadErr
	}
	m.put(id, string(content))
	return nil
}

func (s *mockSession) Close() error {
	s.archive.mu.Lock()
	defer s.archive.mu.Unlock()
	s.archive.closed++
	return nil
}

// textExtractor reads files verbatim for the given kinds.
// Files whose content starts with "%CORRUPT" fail with domain.ErrParse.
type textExtractor struct {
	kinds []domain.DocumentKind
}

func (e *textExtractor) SupportedKinds() []domain.DocumentKind {
	return e.kinds
}

func (e *textExtractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Join(domain.ErrIO, err)
	}
	if strings.HasPrefix(string(data), "%CORRUPT") {
		return "", domain.ErrParse
	}
	return string(data), nil
}

// newTestRegistry handles plain text, DOCX and PDF by reading bytes as text.
func newTestRegistry() *ExtractorRegistry {
	return NewExtractorRegistry(&textExtractor{
		kinds: []domain.DocumentKind{domain.KindPlainText, domain.KindWordProcessor, domain.KindPDF},
	})
}

// mockRecognizer returns fixed text.
type mockRecognizer struct {
	text  string
	err   error
	calls int
}

func (m *mockRecognizer) Recognize(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.text, m.err
}

func (m *mockRecognizer) Languages() []string {
	return []string{"eng", "rus"}
}
