// Package filesystem provides an archive adapter over a local directory.
// Document identifiers are slash paths relative to the root directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
)

// Ensure Archive implements the interfaces.
var (
	_ driven.Archive        = (*Archive)(nil)
	_ driven.ArchiveSession = (*session)(nil)
)

// Archive serves documents from a directory tree.
type Archive struct {
	root string
}

// NewArchive creates an archive rooted at root.
func NewArchive(root string) *Archive {
	return &Archive{root: root}
}

// Connect checks that the root directory exists.
func (a *Archive) Connect(_ context.Context) (driven.ArchiveSession, error) {
	info, err := os.Stat(a.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrConnection, a.root)
	}
	return &session{root: a.root}, nil
}

type session struct {
	root string
}

// List returns the regular files directly inside dir, sorted by name.
func (s *session) List(_ context.Context, dir string) ([]domain.DocumentID, error) {
	entries, err := os.ReadDir(s.local(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s", domain.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	ids := make([]domain.DocumentID, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ids = append(ids, domain.JoinID(dir, entry.Name()))
	}
	return ids, nil
}

func (s *session) Download(_ context.Context, id domain.DocumentID, destPath string) error {
	src, err := os.Open(s.local(id.String()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	defer src.Close()

	return writeAtomic(destPath, src)
}

func (s *session) Upload(_ context.Context, srcPath string, id domain.DocumentID) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	defer src.Close()

	dest := s.local(id.String())
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return writeAtomic(dest, src)
}

func (s *session) Close() error {
	return nil
}

// local maps a slash identifier onto the file system below root.
// ".." segments cannot climb above root.
func (s *session) local(p string) string {
	clean := path.Clean("/" + p)
	return filepath.Join(s.root, filepath.FromSlash(clean))
}

// writeAtomic copies r into a temporary sibling of dest and renames it.
func writeAtomic(dest string, r io.Reader) error {
	tmp := filepath.Join(filepath.Dir(dest), ".part-"+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}
