package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
	"github.com/custodia-labs/docseek/internal/logger"
)

// Ensure RetrievalService implements the interfaces.
var (
	_ driving.RetrievalService = (*RetrievalService)(nil)
	_ driving.ArchiveService   = (*RetrievalService)(nil)
)

// Materializer produces local copies of every listed document.
type Materializer func(ctx context.Context) ([]domain.Document, error)

// Retrieve merges file-name and content matches for query.
//
// File names in listing are tested by plain substring. Content is obtained
// by calling fetchAll and scanning the result. Both tiers use the same raw
// query and the canonical DocumentID, so the union needs no path remapping.
// A fetchAll error aborts the retrieval.
func Retrieve(
	ctx context.Context,
	scanner *Scanner,
	query string,
	listing []domain.DocumentID,
	fetchAll Materializer,
) (*domain.RetrievalResult, error) {
	result := &domain.RetrievalResult{
		Matches:        domain.NewMatchSet(),
		NameMatches:    domain.NewMatchSet(),
		ContentMatches: domain.NewMatchSet(),
		Skipped:        make(map[domain.DocumentID]error),
		Listing:        listing,
	}

	normalizedQuery := Normalize(query)
	if normalizedQuery == "" {
		logger.Debug("Empty query, returning no results")
		return result, nil
	}

	listed := domain.NewMatchSet(listing...)
	for _, id := range listing {
		if NameMatches(normalizedQuery, id.Name()) {
			result.NameMatches.Add(id)
		}
	}
	logger.Debug("Name matches: %v", result.NameMatches.Sorted())

	docs, err := fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	report := scanner.Scan(ctx, docs, query)
	for id := range report.Matches {
		if listed.Has(id) {
			result.ContentMatches.Add(id)
		}
	}
	result.Skipped = report.Skipped
	logger.Debug("Content matches: %v", result.ContentMatches.Sorted())

	result.Matches = result.NameMatches.Union(result.ContentMatches)
	return result, nil
}

// RetrievalService is the retrieval orchestrator.
// Every call lists the archive and re-downloads every document;
// nothing is cached between calls.
type RetrievalService struct {
	archive    driven.Archive
	scanner    *Scanner
	recognizer driven.TextRecognizer
	directory  string
	cacheDir   string
}

// NewRetrievalService creates a retrieval service over the watched directory.
func NewRetrievalService(
	archive driven.Archive,
	extractors driven.ExtractorRegistry,
	directory string,
) *RetrievalService {
	if directory == "" {
		directory = "/"
	}
	return &RetrievalService{
		archive:   archive,
		scanner:   NewScanner(extractors),
		directory: directory,
	}
}

// SetRecognizer enables image search. The recognizer is optional.
func (s *RetrievalService) SetRecognizer(r driven.TextRecognizer) {
	s.recognizer = r
}

// SetCacheDir sets the parent of per-search scratch directories.
// Empty uses the system temp directory.
func (s *RetrievalService) SetCacheDir(dir string) {
	s.cacheDir = dir
}

// Retrieve searches the archive for query.
func (s *RetrievalService) Retrieve(ctx context.Context, query string) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Info("Searching archive %s for %q", s.directory, query)

	if Normalize(query) == "" {
		return Retrieve(ctx, s.scanner, query, nil, nil)
	}

	session, err := s.archive.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to archive: %w", err)
	}
	defer session.Close()

	listing, err := session.List(ctx, s.directory)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.directory, err)
	}
	logger.Info("Archive listing: %d files", len(listing))

	if s.cacheDir != "" {
		if err := os.MkdirAll(s.cacheDir, 0700); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	scratch, err := os.MkdirTemp(s.cacheDir, "docseek-search-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	fetchAll := func(ctx context.Context) ([]domain.Document, error) {
		return materialize(ctx, session, listing, scratch)
	}

	result, err := Retrieve(ctx, s.scanner, query, listing, fetchAll)
	if err != nil {
		return nil, err
	}

	logger.Info("Found %d matches (%d by name, %d by content, %d skipped)",
		result.Matches.Len(), result.NameMatches.Len(), result.ContentMatches.Len(), len(result.Skipped))
	return result, nil
}

// SearchImage recognises text in the image and retrieves with it.
// No retrieval happens when nothing is recognised.
func (s *RetrievalService) SearchImage(ctx context.Context, imagePath string) (*domain.ImageSearchResult, error) {
	if s.recognizer == nil {
		return nil, domain.ErrOCRUnavailable
	}

	logger.Info("Running OCR on %s", imagePath)
	text, err := s.recognizer.Recognize(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("recognising %s: %w", filepath.Base(imagePath), err)
	}

	if Normalize(text) == "" {
		logger.Info("No text recognised in %s", imagePath)
		return &domain.ImageSearchResult{NoText: true}, nil
	}
	logger.Debug("Recognised text: %q", text)

	retrieval, err := s.Retrieve(ctx, text)
	if err != nil {
		return nil, err
	}

	return &domain.ImageSearchResult{
		Text:      text,
		Retrieval: retrieval,
	}, nil
}

// materialize downloads every listed document into dir, in listing order.
// Local names are prefixed with the listing position so documents sharing
// a base name never overwrite each other.
func materialize(
	ctx context.Context,
	session driven.ArchiveSession,
	listing []domain.DocumentID,
	dir string,
) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(listing))
	for i, id := range listing {
		local := filepath.Join(dir, fmt.Sprintf("%04d-%s", i, localName(id)))
		logger.Debug("Downloading %s -> %s", id, local)
		if err := session.Download(ctx, id, local); err != nil {
			return nil, fmt.Errorf("downloading %s: %w", id, err)
		}
		docs = append(docs, domain.NewDocument(id, local))
	}
	return docs, nil
}

// localName returns a file-system safe name for id that keeps its extension.
func localName(id domain.DocumentID) string {
	name := id.Name()
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "document"
	}
	return name
}
