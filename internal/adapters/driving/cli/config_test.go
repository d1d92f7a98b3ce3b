package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

func TestConfigShow_FTP(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.settings.settings.Archive.Host = "ftp.example.com"
	svcs.settings.settings.Archive.Password = "hunter2hunter2"
	svcs.settings.settings.Bot.Token = "123456:ABCDEF"

	out, err := executeCommand(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Archive]")
	assert.Contains(t, out, "Backend: FTP server")
	assert.Contains(t, out, "Host: ftp.example.com")
	assert.Contains(t, out, "Port: 21")
	assert.Contains(t, out, "User: (not set)")
	assert.Contains(t, out, "Password: hunt...ter2")
	assert.NotContains(t, out, "hunter2hunter2")
	assert.Contains(t, out, "Directory: /upload")
	assert.Contains(t, out, "Languages: eng+rus")
	assert.Contains(t, out, "Token: 1234...CDEF")
	assert.Contains(t, out, "Rate limit: 20/s")
	assert.Contains(t, out, "Cache directory: system temp")
}

func TestConfigShow_Filesystem(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.settings.settings.Archive.Backend = domain.ArchiveBackendFilesystem
	svcs.settings.settings.Archive.Root = "/srv/archive"

	out, err := executeCommand(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Backend: Local directory")
	assert.Contains(t, out, "Root: /srv/archive")
	assert.NotContains(t, out, "Host:")
}

func TestConfigShow_Error(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.settings.getErr = errors.New("broken toml")

	_, err := executeCommand(t, "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken toml")
}

func TestConfigSet(t *testing.T) {
	svcs := setupTestServices(t)

	out, err := executeCommand(t, "config", "set", "archive.host", "ftp.example.com")

	require.NoError(t, err)
	assert.Equal(t, "ftp.example.com", svcs.settings.set["archive.host"])
	assert.Contains(t, out, "Set archive.host")
}

func TestConfigSet_Invalid(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.settings.setErr = domain.ErrInvalidInput

	_, err := executeCommand(t, "config", "set", "archive.port", "abc")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSetSecret_FromPipe(t *testing.T) {
	svcs := setupTestServices(t)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("s3cret\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	origStdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = origStdin
		r.Close()
	})

	out, err := executeCommand(t, "config", "set-secret", "archive.password")

	require.NoError(t, err)
	assert.Equal(t, "s3cret", svcs.settings.set["archive.password"])
	assert.NotContains(t, out, "s3cret")
}

func TestConfigKeys(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "config", "keys")

	require.NoError(t, err)
	assert.Equal(t, "archive.host\nbot.token\n", out)
}

func TestConfigPath(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/home/test/.docseek/config.toml\n", out)
}

func TestConfig_NoService(t *testing.T) {
	clearServices(t)

	_, err := executeCommand(t, "config", "keys")

	assert.EqualError(t, err, "settings service not configured")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", maskSecret(""))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "abcd...wxyz", maskSecret("abcdefghijklmnopqrstuvwxyz"))
}
