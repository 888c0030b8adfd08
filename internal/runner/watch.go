package runner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces rapid write events for the same config,
// which file generators emit while writing XML in chunks.
const debounceDelay = 500 * time.Millisecond

// Watcher observes a scenarios tree and emits config paths whenever a
// config*.xml file is created or rewritten.
type Watcher struct {
	root    string
	watcher *fsnotify.Watcher
	configs chan string
	done    chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher starts watching root and all its non-output
// subdirectories.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:    root,
		watcher: fsw,
		configs: make(chan string, 16),
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Configs deliver detected config paths, debounced.
func (w *Watcher) Configs() <-chan string {
	return w.configs
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isOutputDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Run pumps filesystem events until ctx is cancelled. New directories
// are added to the watch set; config writes are debounced and sent on
// the Configs channel. After Run returns, outstanding debounce timers
// are dropped instead of sending.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.mu.Lock()
		for _, t := range w.pending {
			t.Stop()
		}
		w.mu.Unlock()
		close(w.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	name := filepath.Base(event.Name)
	if event.Has(fsnotify.Create) {
		// A new directory may be a scenario dir that will receive
		// configs; start watching it unless it is an output dir.
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if !isOutputDir(name) {
				_ = w.addTree(event.Name)
			}
			return
		}
	}
	if !IsConfigFile(name) {
		return
	}

	path := event.Name
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Reset(debounceDelay)
		return
	}
	w.pending[path] = time.AfterFunc(debounceDelay, func() {
		w.flush(path)
	})
}

// flush delivers a debounced config path. The timer entry is cleared
// first so a later write for the same path schedules a fresh timer,
// and the send gives up once the event loop has shut down.
func (w *Watcher) flush(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()

	select {
	case w.configs <- path:
	case <-w.done:
	}
}
