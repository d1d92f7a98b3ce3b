package telegram

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// mockAPI records outbound requests and serves queued update batches.
type mockAPI struct {
	mu        sync.Mutex
	batches   [][]tgbotapi.Update
	pollErr   error
	configs   []tgbotapi.UpdateConfig
	sent      []tgbotapi.Chattable
	documents map[string]string // file name -> content at send time
	requests  []tgbotapi.Chattable
	fileURL   string
	onPoll    func()
}

func newMockAPI() *mockAPI {
	return &mockAPI{documents: make(map[string]string)}
}

func (m *mockAPI) GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	m.mu.Lock()
	m.configs = append(m.configs, config)
	var batch []tgbotapi.Update
	if len(m.batches) > 0 {
		batch, m.batches = m.batches[0], m.batches[1:]
	}
	onPoll := m.onPoll
	m.mu.Unlock()

	if onPoll != nil {
		onPoll()
	}
	if m.pollErr != nil {
		return nil, m.pollErr
	}
	return batch, nil
}

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
	if doc, ok := c.(tgbotapi.DocumentConfig); ok {
		if path, ok := doc.File.(tgbotapi.FilePath); ok {
			data, _ := os.ReadFile(string(path))
			m.documents[filepath.Base(string(path))] = string(data)
		}
	}
	return tgbotapi.Message{}, nil
}

func (m *mockAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *mockAPI) GetFileDirectURL(fileID string) (string, error) {
	return m.fileURL + "/" + fileID, nil
}

// texts returns the text of every message sent.
func (m *mockAPI) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

// messages returns every MessageConfig sent.
func (m *mockAPI) messages() []tgbotapi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range m.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	return out
}

// mockRetrieval is a mock implementation of driving.RetrievalService.
type mockRetrieval struct {
	result     *domain.RetrievalResult
	image      *domain.ImageSearchResult
	err        error
	queries    []string
	imageBytes string
}

func (m *mockRetrieval) Retrieve(_ context.Context, query string) (*domain.RetrievalResult, error) {
	m.queries = append(m.queries, query)
	return m.result, m.err
}

func (m *mockRetrieval) SearchImage(_ context.Context, imagePath string) (*domain.ImageSearchResult, error) {
	data, _ := os.ReadFile(imagePath)
	m.imageBytes = string(data)
	return m.image, m.err
}

// mockArchive is a mock implementation of driving.ArchiveService.
type mockArchive struct {
	listing      []domain.DocumentID
	listErr      error
	files        map[domain.DocumentID]string
	uploadResult domain.UploadResult
	uploadErr    error
	uploaded     map[string]string // name -> content
}

func (m *mockArchive) ListFiles(_ context.Context) ([]domain.DocumentID, error) {
	return m.listing, m.listErr
}

func (m *mockArchive) Fetch(_ context.Context, id domain.DocumentID, destDir string) (string, error) {
	content, ok := m.files[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	local := filepath.Join(destDir, id.Name())
	return local, os.WriteFile(local, []byte(content), 0600)
}

func (m *mockArchive) Upload(_ context.Context, localPath, name string) (domain.UploadResult, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return domain.UploadResult{Status: domain.UploadFailed}, err
	}
	if m.uploaded == nil {
		m.uploaded = make(map[string]string)
	}
	m.uploaded[name] = string(data)
	return m.uploadResult, m.uploadErr
}

// mockSessions is a mock implementation of driving.SessionService.
type mockSessions struct {
	mu       sync.Mutex
	greeted  map[int64]bool
	touched  []int64
	cursor   int
	advanced []int
}

func (m *mockSessions) Greet(_ context.Context, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.greeted == nil {
		m.greeted = make(map[int64]bool)
	}
	first := !m.greeted[chatID]
	m.greeted[chatID] = true
	return first, nil
}

func (m *mockSessions) Touch(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, chatID)
	return nil
}

func (m *mockSessions) Cursor(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor, nil
}

func (m *mockSessions) Advance(_ context.Context, offset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = offset
	m.advanced = append(m.advanced, offset)
	return nil
}

func (m *mockSessions) Get(_ context.Context, chatID int64) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.greeted[chatID] {
		return nil, nil
	}
	return &domain.Session{ChatID: chatID, Greeted: true}, nil
}
