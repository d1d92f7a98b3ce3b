package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/logger"
)

// ListFiles returns the current listing of the watched directory.
func (s *RetrievalService) ListFiles(ctx context.Context) ([]domain.DocumentID, error) {
	session, err := s.archive.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to archive: %w", err)
	}
	defer session.Close()

	listing, err := session.List(ctx, s.directory)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.directory, err)
	}
	return listing, nil
}

// Fetch downloads id into destDir and returns the local path.
// The local file is named after the document.
func (s *RetrievalService) Fetch(ctx context.Context, id domain.DocumentID, destDir string) (string, error) {
	if id.Name() == "" {
		return "", fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", fmt.Errorf("creating %s: %w", destDir, err)
	}

	session, err := s.archive.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("connecting to archive: %w", err)
	}
	defer session.Close()

	local := filepath.Join(destDir, localName(id))
	logger.Debug("Fetching %s -> %s", id, local)
	if err := session.Download(ctx, id, local); err != nil {
		os.Remove(local)
		return "", fmt.Errorf("downloading %s: %w", id, err)
	}
	return local, nil
}

// Upload stores localPath in the watched directory under name.
//
// A transfer error is reconciled against a fresh listing: if the document
// is present the result is UploadVerified and no error is returned,
// otherwise the result is UploadFailed and the error wraps domain.ErrUpload.
func (s *RetrievalService) Upload(ctx context.Context, localPath, name string) (domain.UploadResult, error) {
	name = strings.TrimSpace(path.Base(filepath.ToSlash(name)))
	if name == "" || name == "." || name == ".." || name == "/" {
		return domain.UploadResult{Status: domain.UploadFailed},
			fmt.Errorf("%w: invalid file name", domain.ErrInvalidInput)
	}
	id := domain.JoinID(s.directory, name)

	session, err := s.archive.Connect(ctx)
	if err != nil {
		return domain.UploadResult{ID: id, Status: domain.UploadFailed},
			fmt.Errorf("connecting to archive: %w", err)
	}
	defer session.Close()

	logger.Info("Uploading %s -> %s", localPath, id)
	transferErr := session.Upload(ctx, localPath, id)
	if transferErr == nil {
		logger.Info("Uploaded %s", id)
		return domain.UploadResult{ID: id, Status: domain.UploadSucceeded}, nil
	}

	logger.Warn("Upload of %s reported an error: %v", id, transferErr)
	result := domain.UploadResult{ID: id, Status: domain.UploadFailed, TransferErr: transferErr}

	listing, err := session.List(ctx, s.directory)
	if err != nil {
		logger.Error("Verifying upload of %s: %v", id, err)
		return result, fmt.Errorf("%w: %s: %v", domain.ErrUpload, id, transferErr)
	}

	for _, listed := range listing {
		if listed == id {
			logger.Info("Upload of %s verified despite transfer error", id)
			result.Status = domain.UploadVerified
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s: %v", domain.ErrUpload, id, transferErr)
}
