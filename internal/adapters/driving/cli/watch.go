package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/logger"
)

const defaultSettle = 500 * time.Millisecond

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Upload files dropped into a local directory",
	Long: `Watches a local directory and uploads every file created or written in it
to the watched archive directory. A file is uploaded once it has been
quiet for the settle interval. Hidden files and subdirectories are ignored.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", defaultSettle, "quiet period before a file is uploaded")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := newDropWatcher(args[0], watchSettle, func(ctx context.Context, path string) {
		result, err := archiveService.Upload(ctx, path, filepath.Base(path))
		if err != nil {
			logger.Error("Upload of %s failed: %v", path, err)
			return
		}
		logger.Info("%s -> %s: %s", path, result.ID, uploadStatusText(result))
	})

	cmd.Printf("Watching %s, press Ctrl+C to stop\n", args[0])
	return w.Run(ctx)
}

// dropWatcher calls upload for each file that settles in dir.
type dropWatcher struct {
	dir    string
	settle time.Duration
	upload func(ctx context.Context, path string)

	mu       sync.Mutex
	pending  map[string]*time.Timer
	inflight sync.WaitGroup
}

func newDropWatcher(dir string, settle time.Duration, upload func(context.Context, string)) *dropWatcher {
	if settle <= 0 {
		settle = defaultSettle
	}
	return &dropWatcher{
		dir:     dir,
		settle:  settle,
		upload:  upload,
		pending: make(map[string]*time.Timer),
	}
}

// Run blocks until ctx is cancelled and started uploads have finished.
func (w *dropWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Debug("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			w.inflight.Wait()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *dropWatcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.pending[event.Name]; ok {
		prev.Stop()
	}
	name := event.Name
	var timer *time.Timer
	timer = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		// A later event may have replaced this timer already.
		if w.pending[name] != timer {
			w.mu.Unlock()
			return
		}
		delete(w.pending, name)
		if ctx.Err() != nil {
			w.mu.Unlock()
			return
		}
		w.inflight.Add(1)
		w.mu.Unlock()

		defer w.inflight.Done()
		w.upload(ctx, name)
	})
	w.pending[name] = timer
}

func (w *dropWatcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for name, timer := range w.pending {
		timer.Stop()
		delete(w.pending, name)
	}
}

// uploadStatusText describes an upload outcome for people.
func uploadStatusText(result domain.UploadResult) string {
	switch result.Status {
	case domain.UploadSucceeded:
		return "uploaded"
	case domain.UploadVerified:
		return "uploaded, verified after a server error"
	default:
		return "failed"
	}
}
