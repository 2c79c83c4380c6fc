// Package watch reloads side tables when their files change on disk.
package watch

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/smell-of-curry/dieface/dieface/table"
)

// Watcher watches a table directory and its subdirectories. Bursts of events
// for one file are collapsed into a single reload once the file has been quiet
// for the debounce interval.
type Watcher struct {
	log      *slog.Logger
	fs       *fsnotify.Watcher
	debounce time.Duration
	reload   func(path string) error

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a watcher over dir. reload is called with the path of every table
// file that was created or written.
func New(log *slog.Logger, dir string, debounce time.Duration, reload func(path string) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		log:      log,
		fs:       fw,
		debounce: debounce,
		reload:   reload,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	if err = w.addTree(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Start ...
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

// run ...
func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("table watcher error", "error", err)
		}
	}
}

// handle ...
func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err = w.addTree(event.Name); err != nil {
				w.log.Error("failed to watch directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !table.IsTableFile(event.Name) {
		return
	}
	w.schedule(event.Name)
}

// schedule (re)starts the debounce timer of path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		if err := w.reload(path); err != nil {
			w.log.Error("failed to reload side table", "path", path, "error", err)
			return
		}
		w.log.Info("Reloaded side table", "path", path)
	})
}

// addTree adds dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err = w.fs.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}
