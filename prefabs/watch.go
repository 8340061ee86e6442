package prefabs

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file; editors often write a
// file several times per save.
const debounce = 100 * time.Millisecond

// Change is one debounced edit to a prefab file.
type Change struct {
	// File is the base name, e.g. tuning.yaml.
	File    string
	Path    string
	ModTime time.Time
}

// Watcher reports edits to the prefab files the game reads. Anything else
// in the watched directories is ignored.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

var watchedFiles = []string{TuningFile, EntitiesFile}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, len(watchedFiles)*4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := changeFor(event, last)
			if !ok {
				continue
			}
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// changeFor filters and debounces a raw event. last holds the time each
// path was last reported.
func changeFor(event fsnotify.Event, last map[string]time.Time) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return Change{}, false
	}
	name := filepath.Base(event.Name)
	if !slices.Contains(watchedFiles, name) {
		return Change{}, false
	}
	now := time.Now()
	if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
		return Change{}, false
	}
	last[event.Name] = now

	change := Change{File: name, Path: event.Name, ModTime: now}
	if info, err := os.Stat(event.Name); err == nil {
		change.ModTime = info.ModTime()
	}
	return change, true
}
