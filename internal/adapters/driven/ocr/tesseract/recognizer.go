// Package tesseract provides a text recogniser that runs the tesseract
// command line tool.
package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/logger"
)

// Ensure Recognizer implements the interface.
var _ driven.TextRecognizer = (*Recognizer)(nil)

// Default configuration values.
const DefaultBinary = "tesseract"

// DefaultLanguages are the language packs passed to tesseract.
var DefaultLanguages = []string{"eng", "rus"}

// CommandRunner runs name with args and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command. Standard error is folded into the returned error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Config holds recogniser settings.
type Config struct {
	// Binary is the tesseract executable (default: tesseract).
	Binary string

	// Languages are tesseract language codes (default: eng, rus).
	Languages []string
}

// Recognizer extracts text from images with tesseract.
type Recognizer struct {
	binary    string
	languages []string
	runner    CommandRunner
}

// New creates a recogniser. A nil runner uses ExecRunner.
func New(cfg Config, runner CommandRunner) *Recognizer {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultLanguages
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Recognizer{
		binary:    cfg.Binary,
		languages: cfg.Languages,
		runner:    runner,
	}
}

// Languages returns the configured language codes.
func (r *Recognizer) Languages() []string {
	return r.languages
}

// Recognize returns the text tesseract finds in the image, which may be empty.
func (r *Recognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	args := []string{imagePath, "stdout", "-l", strings.Join(r.languages, "+")}
	logger.Debug("Running %s %s", r.binary, strings.Join(args, " "))

	out, err := r.runner.Run(ctx, r.binary, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s not found in PATH", domain.ErrOCRUnavailable, r.binary)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	return strings.ToValidUTF8(string(out), "�"), nil
}
