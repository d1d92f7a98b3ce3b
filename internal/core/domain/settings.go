package domain

import "time"

const unknownDescription = "Unknown"

// ArchiveBackend selects the archive transport.
type ArchiveBackend string

// Available archive backends.
const (
	// ArchiveBackendFTP talks to a remote FTP server.
	ArchiveBackendFTP ArchiveBackend = "ftp"

	// ArchiveBackendFilesystem uses a local directory as the archive.
	ArchiveBackendFilesystem ArchiveBackend = "filesystem"
)

// IsValid returns true if the backend is recognised.
func (b ArchiveBackend) IsValid() bool {
	switch b {
	case ArchiveBackendFTP, ArchiveBackendFilesystem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b ArchiveBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b ArchiveBackend) Description() string {
	switch b {
	case ArchiveBackendFTP:
		return "FTP server"
	case ArchiveBackendFilesystem:
		return "Local directory"
	default:
		return unknownDescription
	}
}

// StorageBackend selects where session state is kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite persists sessions in a SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps sessions for the process lifetime only.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageBackendSQLite || b == StorageBackendMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// ArchiveSettings configures the remote archive.
type ArchiveSettings struct {
	// Backend selects the transport.
	Backend ArchiveBackend

	// Host is the FTP server host name.
	Host string

	// Port is the FTP server port.
	Port int

	// User is the FTP login.
	User string

	// Password is the FTP password.
	Password string

	// Directory is the watched archive directory, e.g. "/upload".
	Directory string

	// Root is the local directory backing the filesystem backend.
	Root string

	// Timeout bounds dialing the archive.
	Timeout time.Duration
}

// OCRSettings configures text recognition.
type OCRSettings struct {
	// Binary is the recogniser executable.
	Binary string

	// Languages are the recognition locales.
	Languages []string
}

// BotSettings configures the chat transport.
type BotSettings struct {
	// Token is the chat bot API token.
	Token string

	// PollInterval is the pause between update polls.
	PollInterval time.Duration

	// ErrorBackoff is the pause after a failed poll.
	ErrorBackoff time.Duration

	// RateLimit is the sustained outbound messages per second.
	RateLimit float64
}

// StorageSettings configures session persistence.
type StorageSettings struct {
	// Backend selects the session store.
	Backend StorageBackend

	// DataDir holds the session database.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Archive holds archive transport settings.
	Archive ArchiveSettings

	// OCR holds recognition settings.
	OCR OCRSettings

	// Bot holds chat transport settings.
	Bot BotSettings

	// Storage holds session store settings.
	Storage StorageSettings

	// CacheDir is the parent of per-search scratch directories.
	// Empty means the system temp directory.
	CacheDir string
}

// DefaultAppSettings returns settings with sensible defaults.
// Credentials are left empty and must be configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Archive: ArchiveSettings{
			Backend:   ArchiveBackendFTP,
			Port:      21,
			Directory: "/upload",
			Timeout:   10 * time.Second,
		},
		OCR: OCRSettings{
			Binary:    "tesseract",
			Languages: []string{"eng", "rus"},
		},
		Bot: BotSettings{
			PollInterval: time.Second,
			ErrorBackoff: 5 * time.Second,
			RateLimit:    20,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
	}
}
