package domain

import (
	"path"
	"strings"
)

// DocumentID is the canonical identifier of a document in the archive.
// It is the archive-relative path as returned by the archive listing
// (e.g. "/upload/report.pdf") and is used by every match tier.
type DocumentID string

// String returns the identifier as a plain string.
func (id DocumentID) String() string {
	return string(id)
}

// Name returns the final path element of the identifier.
func (id DocumentID) Name() string {
	s := strings.TrimRight(string(id), "/")
	if s == "" {
		return ""
	}
	return path.Base(s)
}

// Kind derives the document kind from the identifier's extension.
func (id DocumentID) Kind() DocumentKind {
	return KindFromName(id.Name())
}

// JoinID builds a canonical identifier from an archive directory and a file name.
// Names that are already rooted in dir are returned cleaned but otherwise unchanged.
func JoinID(dir, name string) DocumentID {
	if dir == "" {
		dir = "/"
	}
	if strings.HasPrefix(name, "/") {
		return DocumentID(path.Clean(name))
	}
	return DocumentID(path.Join(dir, name))
}

// DocumentKind classifies stored content by how its text is obtained.
type DocumentKind string

// Supported document kinds.
const (
	// KindPlainText is UTF-8 text read verbatim.
	KindPlainText DocumentKind = "plain_text"

	// KindWordProcessor is an Office Open XML word-processing document (.docx).
	KindWordProcessor DocumentKind = "word_processor"

	// KindPDF is a Portable Document Format file.
	KindPDF DocumentKind = "pdf"

	// KindImage is a raster image. Its text only comes from OCR.
	KindImage DocumentKind = "image"

	// KindUnknown is any other file.
	KindUnknown DocumentKind = "unknown"
)

// kindByExtension maps lower-cased file extensions to kinds.
var kindByExtension = map[string]DocumentKind{
	".txt":  KindPlainText,
	".docx": KindWordProcessor,
	".pdf":  KindPDF,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".bmp":  KindImage,
	".tif":  KindImage,
	".tiff": KindImage,
	".webp": KindImage,
}

// KindFromName returns the kind for a file name based on its extension.
func KindFromName(name string) DocumentKind {
	ext := strings.ToLower(path.Ext(name))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindUnknown
}

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindPlainText, KindWordProcessor, KindPDF, KindImage, KindUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// Document is a listed archive file materialised for a single search.
// It never outlives the search that created it.
type Document struct {
	// ID is the canonical archive identifier.
	ID DocumentID

	// Kind is derived from the identifier's extension.
	Kind DocumentKind

	// LocalPath is the location of the transient local copy.
	LocalPath string
}

// NewDocument creates a Document for id cached at localPath.
func NewDocument(id DocumentID, localPath string) Document {
	return Document{
		ID:        id,
		Kind:      id.Kind(),
		LocalPath: localPath,
	}
}
