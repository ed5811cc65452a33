package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events a spreadsheet save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one workbook file and calls OnChange after it settles.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(ctx context.Context)
	Logger   *slog.Logger

	done chan struct{}
}

// New returns a watcher for path with the default debounce.
func New(path string, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{Path: path, Debounce: DefaultDebounce, OnChange: onChange}
}

// Start watches the file's directory, since editors replace files on save, and
// returns once the watch is registered. Events are handled until ctx ends.
func (w *Watcher) Start(ctx context.Context) error {
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.done = make(chan struct{})
	go w.loop(ctx, fw, target)
	return nil
}

// Run starts the watcher and blocks until ctx ends.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-w.done
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, target string) {
	defer close(w.done)
	defer fw.Close()
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case evt, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != target || evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("workbook changed", "path", evt.Name, "op", evt.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Stop()
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if w.OnChange != nil {
				w.OnChange(ctx)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}
