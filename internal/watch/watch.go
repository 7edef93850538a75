// Package watch triggers a callback when files below a directory change.
package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits for events to settle.
const DefaultDelay = 100 * time.Millisecond

// SkipDir reports directories that are never watched.
type SkipDir func(name string) bool

// Watcher debounces file system events below a root directory and calls
// OnChange once per burst. Calls to OnChange never overlap.
type Watcher struct {
	root     string
	delay    time.Duration
	onChange func()
	skip     SkipDir
	logger   *log.Logger

	fs *fsnotify.Watcher

	mu    sync.Mutex // guards timer
	timer *time.Timer

	runMu sync.Mutex // serializes onChange
}

// New creates a Watcher for root. skip may be nil.
func New(root string, delay time.Duration, skip SkipDir, onChange func()) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		delay:    delay,
		onChange: onChange,
		skip:     skip,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		fs:       fs,
	}
	if err := w.addTree(root); err != nil {
		_ = fs.Close()
		return nil, err
	}
	return w, nil
}

// SetLogger sets the logger used for debug output.
func (w *Watcher) SetLogger(l *log.Logger) {
	if l != nil {
		w.logger = l
	}
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && w.skip != nil && w.skip(d.Name()) {
			return filepath.SkipDir
		}
		w.logger.Debug("watching", "dir", p)
		return w.fs.Add(p)
	})
}

// Run processes events until ctx is cancelled. It closes the underlying
// watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		_ = w.fs.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			// Only react to write, create, remove and rename events
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addTree(event.Name)
				}
			}

			w.logger.Debug("change", "file", event.Name, "op", event.Op.String())
			w.schedule()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	w.onChange()
}
