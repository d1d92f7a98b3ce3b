package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Archive Errors.

	// ErrConnection indicates the archive is unreachable or rejected the login.
	// Fatal to the whole retrieval.
	ErrConnection = errors.New("archive connection failed")

	// ErrUpload indicates a document could not be stored in the archive
	// and verification confirmed it is absent.
	ErrUpload = errors.New("upload failed")

	// Extraction Errors.
	// These are isolated per document during a scan.

	// ErrUnsupportedKind indicates no extractor handles the document kind.
	ErrUnsupportedKind = errors.New("unsupported document kind")

	// ErrParse indicates the document structure is malformed.
	ErrParse = errors.New("malformed document")

	// ErrIO indicates the local copy could not be read.
	ErrIO = errors.New("document unreadable")

	// Recognition Errors.

	// ErrOCRUnavailable indicates the OCR engine is not installed or not configured.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")
)
