package watch

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// simpleWatcher watches a single path non-recursively.
type simpleWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu      sync.Mutex
	verbose bool
}

// NewSimpleWatcher constructs a per-path watcher wired directly to the
// provider's change/log callbacks.
func NewSimpleWatcher(path string, onChange func([]Change), onLogMessage func(LogMessage)) NonRecursiveWatcher {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		onLogMessage(LogMessage{Error: true, Message: "fsnotify init failed: " + err.Error()})
		return &simpleWatcher{}
	}
	if err := fsw.Add(path); err != nil {
		onLogMessage(LogMessage{Error: true, Message: "watch " + path + ": " + err.Error()})
	}

	w := &simpleWatcher{watcher: fsw, done: make(chan struct{})}
	go func() {
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				ct := ChangeUpdated
				switch {
				case ev.Op&fsnotify.Create != 0:
					ct = ChangeAdded
				case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					ct = ChangeDeleted
				}
				onChange([]Change{{Type: ct, Path: ev.Name}})
				if w.isVerbose() {
					onLogMessage(LogMessage{Message: "fsnotify: " + ev.String()})
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				onLogMessage(LogMessage{Error: true, Message: err.Error()})
			case <-w.done:
				return
			}
		}
	}()
	return w
}

func (w *simpleWatcher) isVerbose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.verbose
}

// SetVerboseLogging toggles whether non-error fsnotify events are reported
// through the log callback, mirroring EfficientWatcher's toggle.
func (w *simpleWatcher) SetVerboseLogging(verbose bool) {
	w.mu.Lock()
	w.verbose = verbose
	w.mu.Unlock()
}

func (w *simpleWatcher) Dispose() {
	if w.done != nil {
		close(w.done)
	}
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}
