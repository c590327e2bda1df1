package devserver

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"sourcelike.dev/typegen/log"
)

// Watcher watches a fixed set of schema files and debounces their change
// events before calling back, so an editor's "save" sequence of a
// truncate followed by a write does not trigger two renders.
type Watcher struct {
	watcher  *fsnotify.Watcher
	log      log.Logger
	debounce time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	onEvent func(path string)
}

// NewWatcher starts watching every directory containing a path in paths
// (fsnotify only watches directories reliably across editors that save
// by rename-and-replace) and calls onEvent, debounced per file, whenever
// one of paths itself changes.
func NewWatcher(paths []string, lg log.Logger, onEvent func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs := map[string]bool{}
	watched := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	w := &Watcher{
		watcher:  fw,
		log:      lg,
		debounce: 300 * time.Millisecond,
		timers:   map[string]*time.Timer{},
		onEvent:  onEvent,
	}
	go w.run(watched)
	return w, nil
}

func (w *Watcher) run(watched map[string]bool) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil || !watched[path] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("devserver watch error", "err", err)
		}
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() { w.onEvent(path) })
}

func (w *Watcher) Close() error { return w.watcher.Close() }
