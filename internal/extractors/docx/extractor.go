package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedKinds returns the document kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindWordProcessor}
}

// Extract returns the text of every paragraph in document order, table
// cells included, joined with single spaces.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: not a DOCX archive: %v", domain.ErrParse, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: opening %s: %v", domain.ErrParse, documentPart, err)
		}
		defer rc.Close()

		paragraphs, err := parseParagraphs(rc)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrParse, documentPart, err)
		}
		return strings.Join(paragraphs, " "), nil
	}

	return "", fmt.Errorf("%w: missing %s", domain.ErrParse, documentPart)
}

// parseParagraphs streams word/document.xml and returns the text of each
// w:p element in the order the elements open. Runs inside nested
// paragraphs (text boxes) belong to the innermost paragraph.
func parseParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		stack      []*strings.Builder
		order      []int
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				stack = append(stack, &strings.Builder{})
				order = append(order, len(paragraphs))
				paragraphs = append(paragraphs, "")
			case "t":
				inText = true
			case "tab", "br", "cr":
				if len(stack) > 0 {
					stack[len(stack)-1].WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if len(stack) == 0 {
					continue
				}
				top := len(stack) - 1
				paragraphs[order[top]] = stack[top].String()
				stack = stack[:top]
				order = order[:top]
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && len(stack) > 0 {
				stack[len(stack)-1].Write(t)
			}
		}
	}

	return paragraphs, nil
}
