package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// staticMaterializer writes contents to dir and returns the documents.
func staticMaterializer(t *testing.T, contents map[domain.DocumentID]string) Materializer {
	t.Helper()
	dir := t.TempDir()
	return func(_ context.Context) ([]domain.Document, error) {
		docs := make([]domain.Document, 0, len(contents))
		for id, content := range contents {
			docs = append(docs, writeDoc(t, dir, id, content))
		}
		return docs, nil
	}
}

func TestRetrieve_FilenameOnly(t *testing.T) {
	listing := []domain.DocumentID{"/upload/Invoice_March.pdf", "/upload/notes.txt"}
	fetch := staticMaterializer(t, map[domain.DocumentID]string{
		"/upload/Invoice_March.pdf": "%CORRUPT",
		"/upload/notes.txt":         "unrelated",
	})

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), "invoice", listing, fetch)

	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentID{"/upload/Invoice_March.pdf"}, result.Matches.Sorted())
	assert.True(t, result.NameMatches.Has("/upload/Invoice_March.pdf"))
	assert.Zero(t, result.ContentMatches.Len())
}

func TestRetrieve_ContentOnly(t *testing.T) {
	listing := []domain.DocumentID{"/upload/report.pdf"}
	fetch := staticMaterializer(t, map[domain.DocumentID]string{
		"/upload/report.pdf": "the contract was signed on monday",
	})

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), "contract", listing, fetch)

	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentID{"/upload/report.pdf"}, result.Matches.Sorted())
	assert.Zero(t, result.NameMatches.Len())
	assert.True(t, result.ContentMatches.Has("/upload/report.pdf"))
}

func TestRetrieve_NoDuplicates(t *testing.T) {
	listing := []domain.DocumentID{"/upload/contract.txt"}
	fetch := staticMaterializer(t, map[domain.DocumentID]string{
		"/upload/contract.txt": "contract terms",
	})

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), "contract", listing, fetch)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Matches.Len())
	assert.True(t, result.NameMatches.Has("/upload/contract.txt"))
	assert.True(t, result.ContentMatches.Has("/upload/contract.txt"))
}

func TestRetrieve_NameMatchUsesBaseNameOnly(t *testing.T) {
	listing := []domain.DocumentID{"/upload/a.txt"}
	fetch := staticMaterializer(t, map[domain.DocumentID]string{"/upload/a.txt": "nothing"})

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), "upload", listing, fetch)

	require.NoError(t, err)
	assert.Zero(t, result.Matches.Len())
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	called := false
	fetch := func(_ context.Context) ([]domain.Document, error) {
		called = true
		return nil, nil
	}

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), " \t ",
		[]domain.DocumentID{"/upload/a.txt"}, fetch)

	require.NoError(t, err)
	assert.Zero(t, result.Matches.Len())
	assert.False(t, called)
}

func TestRetrieve_MaterializerError(t *testing.T) {
	fetchErr := errors.New("connection reset")
	fetch := func(_ context.Context) ([]domain.Document, error) {
		return nil, fetchErr
	}

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), "a",
		[]domain.DocumentID{"/upload/a.txt"}, fetch)

	assert.ErrorIs(t, err, fetchErr)
	assert.Nil(t, result)
}

func TestRetrieve_IgnoresUnlistedContentMatches(t *testing.T) {
	fetch := staticMaterializer(t, map[domain.DocumentID]string{
		"/upload/stray.txt": "needle",
	})

	result, err := Retrieve(context.Background(), NewScanner(newTestRegistry()), "needle", nil, fetch)

	require.NoError(t, err)
	assert.Zero(t, result.Matches.Len())
}

// --- RetrievalService ---

func newTestService(archive *mockArchive) *RetrievalService {
	service := NewRetrievalService(archive, newTestRegistry(), "/upload")
	return service
}

func TestRetrievalService_Retrieve_EndToEnd(t *testing.T) {
	archive := newMockArchive().
		put("/upload/alpha.txt", "Meeting notes").
		put("/upload/beta.pdf", "Budget meeting minutes")
	service := newTestService(archive)
	service.SetCacheDir(t.TempDir())

	result, err := service.Retrieve(context.Background(), "meeting")

	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentID{"/upload/alpha.txt", "/upload/beta.pdf"}, result.Matches.Sorted())
	assert.Equal(t, []domain.DocumentID{"/upload/alpha.txt", "/upload/beta.pdf"}, result.Listing)
	assert.Equal(t, 2, archive.downloads)
	assert.Equal(t, 1, archive.closed)
}

func TestRetrievalService_Retrieve_ReDownloadsEveryCall(t *testing.T) {
	archive := newMockArchive().put("/upload/alpha.txt", "alpha")
	service := newTestService(archive)
	service.SetCacheDir(t.TempDir())

	_, err := service.Retrieve(context.Background(), "alpha")
	require.NoError(t, err)
	_, err = service.Retrieve(context.Background(), "alpha")
	require.NoError(t, err)

	assert.Equal(t, 2, archive.downloads)
	assert.Equal(t, 2, archive.connects)
}

func TestRetrievalService_Retrieve_RemovesScratchDirectory(t *testing.T) {
	archive := newMockArchive().
		put("/upload/alpha.txt", "alpha").
		put("/upload/beta.pdf", "%CORRUPT")
	cache := t.TempDir()
	service := newTestService(archive)
	service.SetCacheDir(cache)

	_, err := service.Retrieve(context.Background(), "alpha")
	require.NoError(t, err)

	entries, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRetrievalService_Retrieve_SameBaseNameDoesNotCollide(t *testing.T) {
	archive := newMockArchive().
		put("/upload/a/notes.txt", "first copy").
		put("/upload/b/notes.txt", "second copy")
	service := newTestService(archive)
	service.SetCacheDir(t.TempDir())

	result, err := service.Retrieve(context.Background(), "first")

	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentID{"/upload/a/notes.txt"}, result.ContentMatches.Sorted())
}

func TestRetrievalService_Retrieve_ConnectError(t *testing.T) {
	archive := newMockArchive()
	archive.connectErr = domain.ErrConnection
	service := newTestService(archive)

	_, err := service.Retrieve(context.Background(), "anything")

	assert.ErrorIs(t, err, domain.ErrConnection)
}

func TestRetrievalService_Retrieve_ListError(t *testing.T) {
	archive := newMockArchive()
	archive.listErr = errors.New("550 no such directory")
	service := newTestService(archive)

	_, err := service.Retrieve(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "550")
	assert.Equal(t, 1, archive.closed)
}

func TestRetrievalService_Retrieve_DownloadErrorAborts(t *testing.T) {
	archive := newMockArchive().
		put("/upload/alpha.txt", "alpha").
		put("/upload/beta.txt", "beta")
	archive.downloadErr["/upload/beta.txt"] = domain.ErrConnection
	cache := t.TempDir()
	service := newTestService(archive)
	service.SetCacheDir(cache)

	result, err := service.Retrieve(context.Background(), "alpha")

	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.Nil(t, result)

	entries, readErr := os.ReadDir(cache)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRetrievalService_Retrieve_EmptyQueryDoesNotConnect(t *testing.T) {
	archive := newMockArchive().put("/upload/alpha.txt", "alpha")
	service := newTestService(archive)

	result, err := service.Retrieve(context.Background(), "   ")

	require.NoError(t, err)
	assert.Zero(t, result.Matches.Len())
	assert.Zero(t, archive.connects)
}

func TestRetrievalService_Retrieve_EmptyArchive(t *testing.T) {
	service := newTestService(newMockArchive())
	service.SetCacheDir(t.TempDir())

	result, err := service.Retrieve(context.Background(), "anything")

	require.NoError(t, err)
	assert.Zero(t, result.Matches.Len())
	assert.Empty(t, result.Listing)
}

func TestRetrievalService_DefaultDirectory(t *testing.T) {
	service := NewRetrievalService(newMockArchive(), newTestRegistry(), "")

	assert.Equal(t, "/", service.directory)
}

func TestRetrievalService_SearchImage(t *testing.T) {
	archive := newMockArchive().put("/upload/invoice.txt", "invoice 2023")
	service := newTestService(archive)
	service.SetCacheDir(t.TempDir())
	recognizer := &mockRecognizer{text: "INVOICE\n2023"}
	service.SetRecognizer(recognizer)

	result, err := service.SearchImage(context.Background(), filepath.Join(t.TempDir(), "photo.jpg"))

	require.NoError(t, err)
	assert.False(t, result.NoText)
	assert.Equal(t, "INVOICE\n2023", result.Text)
	require.NotNil(t, result.Retrieval)
	assert.True(t, result.Retrieval.Matches.Has("/upload/invoice.txt"))
}

func TestRetrievalService_SearchImage_NoText(t *testing.T) {
	archive := newMockArchive().put("/upload/invoice.txt", "invoice")
	service := newTestService(archive)
	service.SetRecognizer(&mockRecognizer{text: " \n\f "})

	result, err := service.SearchImage(context.Background(), "photo.jpg")

	require.NoError(t, err)
	assert.True(t, result.NoText)
	assert.Nil(t, result.Retrieval)
	assert.Zero(t, archive.connects)
}

func TestRetrievalService_SearchImage_RecognizerError(t *testing.T) {
	service := newTestService(newMockArchive())
	service.SetRecognizer(&mockRecognizer{err: domain.ErrOCRUnavailable})

	_, err := service.SearchImage(context.Background(), "photo.jpg")

	assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
}

func TestRetrievalService_SearchImage_NoRecognizer(t *testing.T) {
	service := newTestService(newMockArchive())

	_, err := service.SearchImage(context.Background(), "photo.jpg")

	assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "report.pdf", localName("/upload/report.pdf"))
	assert.Equal(t, "a_b.txt", localName(`/upload/a\b.txt`))
	assert.Equal(t, "document", localName(""))
}
