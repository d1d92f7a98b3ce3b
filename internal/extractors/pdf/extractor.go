package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// pageSource is the subset of a parsed PDF the extractor reads.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

// opener parses the PDF at path.
type opener func(path string) (pageSource, io.Closer, error)

// Extractor handles PDF documents using github.com/ledongthuc/pdf.
type Extractor struct {
	open opener
}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{open: openFile}
}

// SupportedKinds returns the document kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindPDF}
}

// Extract returns the text of every page in order, joined with single spaces.
// A page that cannot be decoded contributes no text.
func (e *Extractor) Extract(_ context.Context, path string) (text string, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIO, statErr)
	}

	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrParse, r)
		}
	}()

	src, closer, err := e.open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	defer closer.Close()

	pages := src.NumPage()
	texts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		texts = append(texts, pageText(src, i))
	}
	return strings.Join(texts, " "), nil
}

// pageText returns the text of page i, or "" if the page fails.
func pageText(src pageSource, i int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("PDF page %d panicked: %v", i, r)
			text = ""
		}
	}()

	text, err := src.PageText(i)
	if err != nil {
		logger.Debug("PDF page %d: %v", i, err)
		return ""
	}
	return text
}

// reader adapts *pdf.Reader to pageSource.
type reader struct {
	r *pdf.Reader
}

func (r reader) NumPage() int {
	return r.r.NumPage()
}

func (r reader) PageText(i int) (string, error) {
	page := r.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func openFile(path string) (pageSource, io.Closer, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, nil, err
	}
	return reader{r: r}, f, nil
}
