package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher reloads a registry from a config file when it changes on
// disk. The containing directory is watched, not the file itself, so
// editors that replace the file by rename are still observed.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	reg     *Registry
	logf    func(format string, args ...any)

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// WatchFile starts watching path and reloading reg on changes. logf
// receives reload diagnostics and may be nil.
func WatchFile(path string, reg *Registry, logf func(format string, args ...any)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config %s: %w", abs, err)
	}

	w := &FileWatcher{
		watcher: fsw,
		path:    abs,
		reg:     reg,
		logf:    logf,
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *FileWatcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := w.reg.LoadFile(w.path); err != nil {
				w.debugf("config reload: %v", err)
			} else {
				w.debugf("config reloaded from %s", w.path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.debugf("config watch: %v", err)
		}
	}
}

func (w *FileWatcher) debugf(format string, args ...any) {
	if w.logf != nil {
		w.logf(format, args...)
	}
}
