// Package watch reindexes a project's MEMORY.md on change, grounded on
// cmd/bd/list.go's fsnotify watch-and-debounce loop.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay matches the teacher's list-watch debounce window.
const DebounceDelay = 500 * time.Millisecond

// Watcher watches a project directory for writes to memoryFile and calls
// OnChange (debounced) when one occurs.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	memoryFile string
	onChange   func()
	debounce   time.Duration

	errCh chan error
}

// New creates a Watcher over dir, invoking onChange (debounced by delay)
// whenever memoryFileName inside dir is written. delay <= 0 uses
// DebounceDelay.
func New(dir, memoryFileName string, delay time.Duration, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	if delay <= 0 {
		delay = DebounceDelay
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		memoryFile: memoryFileName,
		onChange:   onChange,
		debounce:   delay,
		errCh:      make(chan error, 1),
	}, nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

// Run blocks, dispatching debounced OnChange calls until stop is closed.
// Watcher errors are delivered on Errors() rather than stopping the loop,
// matching the teacher's "log and keep watching" policy.
func (w *Watcher) Run(stop <-chan struct{}) {
	var debounceTimer *time.Timer

	for {
		select {
		case <-stop:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if filepath.Base(event.Name) != w.memoryFile {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.onChange)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errCh <- err:
			default:
			}
		}
	}
}

// Errors surfaces fsnotify-level errors encountered during Run.
func (w *Watcher) Errors() <-chan error {
	return w.errCh
}
