package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file every time it changes on disk.
// Reloaded configs and errors are delivered over channels, so the render loop can poll
// them between frames.
type Watcher struct {
	path string

	fsnotify  *fsnotify.Watcher
	configs   chan Config
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once
}

// Watch starts watching the config at path. The directory of the file is watched
// instead of the file itself so that editors that replace the file on save still trigger a reload.
func Watch(path string) (*Watcher, error) {

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := fsWatch.Add(filepath.Dir(path)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("failed to watch config '%s': %w", path, err)
	}

	w := &Watcher{
		path:     path,
		fsnotify: fsWatch,
		configs:  make(chan Config),
		errors:   make(chan error),
		done:     make(chan struct{}),
	}

	go w.start()
	return w, nil
}

// Configs delivers a freshly loaded config after each change
func (w *Watcher) Configs() <-chan Config {
	return w.configs
}

// Errors delivers load and watch errors. A config that fails to load is not sent on Configs
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Close() error {

	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
	})

	return err
}

func (w *Watcher) start() {

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			cfg, err := Load(w.path)
			if err != nil {
				w.sendErr(err)
				continue
			}

			select {
			case w.configs <- cfg:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}

			w.sendErr(err)
		}
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errors <- err:
	case <-w.done:
	}
}
