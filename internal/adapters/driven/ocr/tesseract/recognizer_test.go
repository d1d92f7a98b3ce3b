package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

type mockRunner struct {
	out  []byte
	err  error
	name string
	args []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.out, m.err
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF}, 0600))
	return path
}

func TestNew_Defaults(t *testing.T) {
	r := New(Config{}, nil)

	assert.Equal(t, DefaultBinary, r.binary)
	assert.Equal(t, []string{"eng", "rus"}, r.Languages())
	assert.IsType(t, ExecRunner{}, r.runner)
}

func TestRecognize_Arguments(t *testing.T) {
	runner := &mockRunner{out: []byte("INVOICE 2023\n")}
	r := New(Config{Binary: "/usr/bin/tesseract", Languages: []string{"eng", "deu"}}, runner)
	image := writeImage(t)

	text, err := r.Recognize(context.Background(), image)

	require.NoError(t, err)
	assert.Equal(t, "INVOICE 2023\n", text)
	assert.Equal(t, "/usr/bin/tesseract", runner.name)
	assert.Equal(t, []string{image, "stdout", "-l", "eng+deu"}, runner.args)
}

func TestRecognize_EmptyOutput(t *testing.T) {
	r := New(Config{}, &mockRunner{out: []byte("\f")})

	text, err := r.Recognize(context.Background(), writeImage(t))

	require.NoError(t, err)
	assert.Equal(t, "\f", text)
}

func TestRecognize_BinaryMissing(t *testing.T) {
	runner := &mockRunner{err: fmt.Errorf("exec: %w", exec.ErrNotFound)}
	r := New(Config{}, runner)

	_, err := r.Recognize(context.Background(), writeImage(t))

	assert.ErrorIs(t, err, domain.ErrOCRUnavailable)
}

func TestRecognize_CommandFails(t *testing.T) {
	runner := &mockRunner{err: errors.New("Error in pixReadStream")}
	r := New(Config{}, runner)

	_, err := r.Recognize(context.Background(), writeImage(t))

	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestRecognize_MissingImage(t *testing.T) {
	runner := &mockRunner{}
	r := New(Config{}, runner)

	_, err := r.Recognize(context.Background(), filepath.Join(t.TempDir(), "none.jpg"))

	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Empty(t, runner.name)
}

func TestExecRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	out, err := ExecRunner{}.Run(context.Background(), "echo", "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(out))
}

func TestExecRunner_NotFound(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "docseek-no-such-binary")

	assert.ErrorIs(t, err, exec.ErrNotFound)
}
