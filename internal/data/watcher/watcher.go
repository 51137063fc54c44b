// Package watcher notifies when a source file changes on disk.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/sam-masaki/layout-speed/internal/util"
)

// FileWatcher watches a single file for modification. The parent
// directory is watched rather than the file itself so editors that
// replace-on-save keep triggering events.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan string
}

// New starts watching path.
func New(path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		events:  make(chan string, 16),
	}

	if err := watcher.Add(filepath.Dir(fw.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()
	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case fw.events <- event.Name:
			default:
				// A rebuild is already pending, drop the duplicate
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File watch error: " + err.Error())
		}
	}
}

// Events delivers the path once per detected change. The channel is
// closed after Close, so ranging over it terminates.
func (fw *FileWatcher) Events() <-chan string {
	return fw.events
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
