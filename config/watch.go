package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file whenever it changes on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching the configuration file at path. The parent directory is watched rather
// than the file itself so editors that save by renaming a temporary file are still seen.
// Callbacks run on the watcher goroutine; hosts with a single-threaded render loop should post
// the work onto their own goroutine instead of touching shared state directly.
//
// Parameters:
//   - path: the configuration file to watch
//   - onChange: called with the freshly loaded and validated configuration
//   - onError: called with load and watch errors (nil ignores them)
//
// Returns:
//   - *Watcher: the running watcher, stop it with Close
//   - error: error if the watch could not be established
func Watch(path string, onChange func(Config), onError func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		done:    make(chan struct{}),
	}
	if onError == nil {
		onError = func(error) {}
	}

	w.wg.Add(1)
	go w.loop(onChange, onError)
	return w, nil
}

func (w *Watcher) loop(onChange func(Config), onError func(error)) {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				onError(err)
				continue
			}
			if onChange != nil {
				onChange(cfg)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			onError(fmt.Errorf("config watcher: %w", err))
		}
	}
}

// relevant reports whether event changed the contents of the watched file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit. Safe to call multiple times.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
