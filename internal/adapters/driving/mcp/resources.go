package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docseek resources.
	uriScheme = "docseek://"

	listingURI = uriScheme + "listing"
)

// mimeTypes maps archive document kinds to resource MIME types.
var mimeTypes = map[domain.DocumentKind]string{
	domain.KindPlainText:     "text/plain",
	domain.KindWordProcessor: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	domain.KindPDF:           "application/pdf",
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Archive == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         listingURI,
		Name:        "listing",
		Description: "Documents in the watched archive directory",
		MIMEType:    "application/json",
	}, s.handleListingResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{+path}",
		Name:        "document",
		Description: "Raw bytes of an archive document",
	}, s.handleDocumentResource)
}

// handleListingResource returns the archive listing as JSON.
func (s *Server) handleListingResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	listing, err := s.ports.Archive.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}

	type fileInfo struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Kind string `json:"kind"`
		URI  string `json:"uri"`
	}

	infos := make([]fileInfo, len(listing))
	for i, id := range listing {
		infos[i] = fileInfo{
			ID:   id.String(),
			Name: id.Name(),
			Kind: id.Kind().String(),
			URI:  documentURI(id),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling listing: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource downloads one document and returns its bytes.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractDocumentID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	dir, err := os.MkdirTemp("", "docseek-mcp-")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	local, err := s.ports.Archive.Fetch(ctx, id, dir)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", id, err)
	}

	contents := &mcp.ResourceContents{URI: req.Params.URI}
	if mime, ok := mimeTypes[id.Kind()]; ok {
		contents.MIMEType = mime
	}
	if id.Kind() == domain.KindPlainText {
		contents.Text = string(data)
	} else {
		contents.Blob = data
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{contents}}, nil
}

// documentURI builds docseek://documents/{path} for id.
func documentURI(id domain.DocumentID) string {
	return uriScheme + "documents/" + strings.TrimPrefix(id.String(), "/")
}

// extractDocumentID extracts the document ID from a URI like docseek://documents/upload/a.pdf.
func extractDocumentID(uri string) domain.DocumentID {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return ""
	}
	return domain.DocumentID(path.Clean("/" + rest))
}
