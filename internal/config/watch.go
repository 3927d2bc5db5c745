package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is the debounce window for config file events. Editors tend
// to fire several events per save (write, chmod, rename-replace).
const WatchDebounce = 500 * time.Millisecond

// Watcher reloads the configuration when the file changes on disk and
// delivers the parsed result on Events.
type Watcher struct {
	Events chan *AppConfig

	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
	logf    func(string, ...any)
}

// NewWatcher creates a watcher for the config file at path. logf may be nil.
func NewWatcher(path string, logf func(string, ...any)) *Watcher {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Watcher{
		Events: make(chan *AppConfig, 1),
		path:   path,
		done:   make(chan struct{}),
		logf:   logf,
	}
}

// Start begins watching. It watches the containing directory rather than the
// file itself so that atomic saves (write to temp, rename over) keep being
// observed.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return err
	}
	w.watcher = watcher

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(WatchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logf("config watch error: %v", err)
		case <-fire:
			cfg, _, err := LoadConfig(w.path)
			if err != nil {
				w.logf("config reload failed: %v", err)
				continue
			}
			w.logf("config reloaded from %s", w.path)
			select {
			case w.Events <- cfg:
			default:
			}
		}
	}
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
	})
}
