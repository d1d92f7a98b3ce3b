// Package ftp provides an archive adapter backed by an FTP server.
package ftp

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jlaffaye/ftp"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/logger"
)

// Ensure Archive implements the interfaces.
var (
	_ driven.Archive        = (*Archive)(nil)
	_ driven.ArchiveSession = (*Session)(nil)
)

// Default configuration values.
const (
	DefaultPort    = 21
	DefaultTimeout = 10 * time.Second
	anonymousUser  = "anonymous"
)

// Config holds connection settings for the FTP archive.
type Config struct {
	// Host is the server host name or address.
	Host string

	// Port is the control connection port (default: 21).
	Port int

	// User is the login name. Empty logs in anonymously.
	User string

	// Password is the login password.
	Password string

	// Timeout bounds dialling and each command (default: 10s).
	Timeout time.Duration
}

// client is the subset of *ftp.ServerConn used by a session.
type client interface {
	List(path string) ([]*ftp.Entry, error)
	Retr(path string) (io.ReadCloser, error)
	Stor(path string, r io.Reader) error
	Quit() error
}

// dialer opens and authenticates a control connection.
type dialer func(ctx context.Context, cfg Config) (client, error)

// Archive connects to an FTP server. Every Connect opens a fresh control
// connection; nothing is pooled.
type Archive struct {
	cfg  Config
	dial dialer
}

// NewArchive creates an FTP archive adapter.
func NewArchive(cfg Config) *Archive {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Archive{cfg: cfg, dial: dialServer}
}

// Addr returns the host:port the archive dials.
func (a *Archive) Addr() string {
	return net.JoinHostPort(a.cfg.Host, strconv.Itoa(a.cfg.Port))
}

// Connect opens an authenticated session.
func (a *Archive) Connect(ctx context.Context) (driven.ArchiveSession, error) {
	if a.cfg.Host == "" {
		return nil, fmt.Errorf("%w: no FTP host configured", domain.ErrConnection)
	}

	logger.Debug("Connecting to ftp://%s", a.Addr())
	c, err := a.dial(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConnection, a.Addr(), err)
	}
	return &Session{conn: c}, nil
}

// Session is one authenticated FTP control connection.
type Session struct {
	conn client
}

// List returns the regular files in dir in server order.
func (s *Session) List(_ context.Context, dir string) ([]domain.DocumentID, error) {
	entries, err := s.conn.List(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: LIST %s: %v", domain.ErrConnection, dir, err)
	}

	ids := make([]domain.DocumentID, 0, len(entries))
	for _, entry := range entries {
		if entry == nil || entry.Type != ftp.EntryTypeFile {
			continue
		}
		ids = append(ids, domain.JoinID(dir, entry.Name))
	}
	return ids, nil
}

// Download retrieves id into destPath. The file appears only once the
// transfer has completed.
func (s *Session) Download(_ context.Context, id domain.DocumentID, destPath string) error {
	resp, err := s.conn.Retr(id.String())
	if err != nil {
		return fmt.Errorf("%w: RETR %s: %v", domain.ErrConnection, id, err)
	}

	tmp := filepath.Join(filepath.Dir(destPath), ".part-"+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		resp.Close()
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	_, copyErr := io.Copy(f, resp)
	closeErr := resp.Close()
	fileErr := f.Close()

	switch {
	case copyErr != nil:
		os.Remove(tmp)
		return fmt.Errorf("%w: RETR %s: %v", domain.ErrConnection, id, copyErr)
	case closeErr != nil:
		os.Remove(tmp)
		return fmt.Errorf("%w: RETR %s: %v", domain.ErrConnection, id, closeErr)
	case fileErr != nil:
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrIO, fileErr)
	}

	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return nil
}

// Upload stores srcPath as id.
func (s *Session) Upload(_ context.Context, srcPath string, id domain.DocumentID) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	defer f.Close()

	if err := s.conn.Stor(id.String(), f); err != nil {
		return fmt.Errorf("STOR %s: %w", id, err)
	}
	return nil
}

// Close ends the session.
func (s *Session) Close() error {
	return s.conn.Quit()
}

// serverConn adapts *ftp.ServerConn to client.
type serverConn struct {
	*ftp.ServerConn
}

func (c serverConn) Retr(path string) (io.ReadCloser, error) {
	return c.ServerConn.Retr(path)
}

func dialServer(ctx context.Context, cfg Config) (client, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	conn, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, err
	}

	user, password := cfg.User, cfg.Password
	if user == "" {
		user, password = anonymousUser, anonymousUser
	}
	if err := conn.Login(user, password); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("login as %s: %w", user, err)
	}
	return serverConn{conn}, nil
}
