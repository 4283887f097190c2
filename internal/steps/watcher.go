package steps

import (
	"path/filepath"
	"sync"
	"time"

	"aura/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a local step configuration file when it changes on
// disk. Used in development when the steps source is a file rather
// than the static endpoint; the deployed app fetches once and never
// reloads.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	onReload func(*Sequence, map[string]any)
	lastFire time.Time
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// WatchFile starts watching path. onReload is called with the freshly
// validated sequence after each change; a change that fails to load or
// validate is logged and the previous sequence stays in effect.
func WatchFile(path string, onReload func(*Sequence, map[string]any)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files on save, which drops
	// a watch registered on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     path,
		onReload: onReload,
		debounce: 300 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		running:  true,
	}
	go w.run()
	logging.Fetch("watching step file %s for changes", path)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if time.Since(w.lastFire) < w.debounce {
				continue
			}
			w.lastFire = time.Now()
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.FetchError("step watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	doc, err := loadFile(w.path)
	if err != nil {
		logging.FetchError("step reload failed: %v", err)
		return
	}
	seq, err := NewSequence(doc.Steps)
	if err == nil {
		err = seq.Validate()
	}
	if err != nil {
		logging.FetchError("step reload rejected: %v", err)
		return
	}
	logging.Fetch("step file reloaded: %d steps", seq.Len())
	w.onReload(seq, doc.InitialData)
}
