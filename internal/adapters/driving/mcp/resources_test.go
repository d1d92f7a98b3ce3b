package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected domain.DocumentID
	}{
		{"valid document URI", "docseek://documents/upload/report.pdf", "/upload/report.pdf"},
		{"cleans dot segments", "docseek://documents/upload/../upload/a.txt", "/upload/a.txt"},
		{"invalid prefix", "file://documents/upload/a.txt", ""},
		{"missing path", "docseek://documents/", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

func TestDocumentURI_RoundTrip(t *testing.T) {
	id := domain.DocumentID("/upload/report.pdf")

	assert.Equal(t, "docseek://documents/upload/report.pdf", documentURI(id))
	assert.Equal(t, id, extractDocumentID(documentURI(id)))
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleListingResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns listing as JSON", func(t *testing.T) {
		archive := &mockArchiveService{listing: []domain.DocumentID{"/upload/report.pdf"}}
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Archive: archive})
		require.NoError(t, err)

		result, err := server.handleListingResource(ctx, makeReadResourceRequest(listingURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "/upload/report.pdf"`)
		assert.Contains(t, result.Contents[0].Text, `"kind": "pdf"`)
		assert.Contains(t, result.Contents[0].Text, "docseek://documents/upload/report.pdf")
	})

	t.Run("empty listing", func(t *testing.T) {
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Archive: &mockArchiveService{}})
		require.NoError(t, err)

		result, err := server.handleListingResource(ctx, makeReadResourceRequest(listingURI))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		archive := &mockArchiveService{err: domain.ErrConnection}
		server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Archive: archive})
		require.NoError(t, err)

		_, err = server.handleListingResource(ctx, makeReadResourceRequest(listingURI))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing archive")
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()
	archive := &mockArchiveService{files: map[domain.DocumentID]string{
		"/upload/notes.txt":  "meeting notes",
		"/upload/report.pdf": "%PDF-1.4",
	}}
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}, Archive: archive})
	require.NoError(t, err)

	t.Run("text document", func(t *testing.T) {
		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("docseek://documents/upload/notes.txt"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "meeting notes", result.Contents[0].Text)
	})

	t.Run("binary document", func(t *testing.T) {
		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("docseek://documents/upload/report.pdf"))

		require.NoError(t, err)
		assert.Equal(t, "application/pdf", result.Contents[0].MIMEType)
		assert.Equal(t, []byte("%PDF-1.4"), result.Contents[0].Blob)
		assert.Empty(t, result.Contents[0].Text)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("docseek://documents/upload/none.txt"))

		require.Error(t, err)
	})

	t.Run("invalid URI", func(t *testing.T) {
		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("docseek://other"))

		require.Error(t, err)
	})
}
