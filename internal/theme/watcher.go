package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of file events into one change.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to palette directories and template sources.
// Files are watched through their parent directory so editors that
// replace files by rename are still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	// dirs holds directories where any entry counts; files holds exact
	// paths whose parent directory is watched.
	dirs  map[string]bool
	files map[string]bool
}

// NewWatcher creates a watcher with DefaultDebounce.
func NewWatcher(logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger,
		debounce: DefaultDebounce,
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
	}, nil
}

// SetDebounce sets the quiet period before a change is reported.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// AddDir reports changes to any file in dir.
func (w *Watcher) AddDir(dir string) error {
	dir = filepath.Clean(dir)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.mu.Lock()
	w.dirs[dir] = true
	w.mu.Unlock()
	return nil
}

// AddFile reports changes to path.
func (w *Watcher) AddFile(path string) error {
	path = filepath.Clean(path)
	if err := w.watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	w.mu.Lock()
	w.files[path] = true
	w.mu.Unlock()
	return nil
}

// Run calls onChange after each debounced burst of relevant events until
// ctx is cancelled. Calls are serialized on the watch loop. Run closes the
// underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	w.mu.Lock()
	debounce := w.debounce
	w.mu.Unlock()

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("source changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-timer.C:
			onChange()
		}
	}
}

// Watching reports whether changes to path are reported.
func (w *Watcher) Watching(path string) bool {
	path = filepath.Clean(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[path] || w.dirs[path] || w.dirs[filepath.Dir(path)]
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[name] || w.dirs[filepath.Dir(name)]
}
