// Package watch triggers a sync when files appear or change in the target folder.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ccfrost/climbsync/internal/lib"
)

const defaultDebounce = 5 * time.Second

// Watcher calls Trigger once per burst of changes in a folder.
type Watcher struct {
	folder   string
	debounce time.Duration
	trigger  func()

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Watcher for folder. A non-positive debounce uses the default.
func New(folder string, debounce time.Duration, trigger func()) (*Watcher, error) {
	if trigger == nil {
		return nil, fmt.Errorf("trigger required")
	}
	if !filepath.IsAbs(folder) {
		return nil, fmt.Errorf("%w: folder %q is not an absolute path", lib.ErrDirectoryUnavailable, folder)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		folder:   filepath.Clean(folder),
		debounce: debounce,
		trigger:  trigger,
	}, nil
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsWatcher.Close()
	if err := fsWatcher.Add(w.folder); err != nil {
		return fmt.Errorf("%w: %v", lib.ErrDirectoryUnavailable, err)
	}
	defer w.stopTimer()

	lib.Logger().Info("Watching folder", slog.String("folder", w.folder), slog.Duration("debounce", w.debounce))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			lib.Logger().Warn("Folder watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Name == "" {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}
	lib.Logger().Debug("Folder changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))
	w.schedule()
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.trigger)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
