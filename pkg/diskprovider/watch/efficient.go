package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// EfficientWatcher is the cross-platform backend, backed by fsnotify.
// fsnotify only watches the directories explicitly added to it, so this
// backend walks each requested root once at (re)configuration time and adds
// every subdirectory, then relies on Create events to pick up newly
// created subdirectories as the tree grows.
type EfficientWatcher struct {
	onChange     func([]Change)
	onLogMessage func(LogMessage)

	mu      sync.Mutex
	verbose bool
	watched map[string]Folder // root path -> folder config
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewEfficientWatcher constructs the cross-platform backend.
func NewEfficientWatcher(folders []Folder, onChange func([]Change), onLogMessage func(LogMessage), verbose bool) RecursiveWatcher {
	w := &EfficientWatcher{
		onChange:     onChange,
		onLogMessage: onLogMessage,
		verbose:      verbose,
		watched:      make(map[string]Folder),
		done:         make(chan struct{}),
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		onLogMessage(LogMessage{Error: true, Message: "fsnotify init failed: " + err.Error()})
		return w
	}
	w.watcher = fsw

	go w.pump()
	w.Watch(folders)
	return w
}

func (w *EfficientWatcher) pump() {
	if w.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onLogMessage(LogMessage{Error: true, Message: err.Error()})
		case <-w.done:
			return
		}
	}
}

func (w *EfficientWatcher) handleEvent(ev fsnotify.Event) {
	var ct ChangeType
	switch {
	case ev.Op&fsnotify.Create != 0:
		ct = ChangeAdded
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.addRecursive(ev.Name)
		}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		ct = ChangeDeleted
	default:
		ct = ChangeUpdated
	}

	if w.isExcluded(ev.Name) {
		return
	}

	w.onChange([]Change{{Type: ct, Path: ev.Name}})
	if w.verbose {
		w.onLogMessage(LogMessage{Message: "fsnotify: " + ev.String()})
	}
}

func (w *EfficientWatcher) isExcluded(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, f := range w.watched {
		for _, pattern := range f.Excludes {
			if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
				return true
			}
		}
	}
	return false
}

func (w *EfficientWatcher) addRecursive(root string) {
	if w.watcher == nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			_ = w.watcher.Add(path)
		}
		return nil
	})
}

// Watch reconfigures the set of watched roots, diffing against what is
// currently watched.
func (w *EfficientWatcher) Watch(folders []Folder) {
	if w.watcher == nil {
		return
	}

	w.mu.Lock()
	next := make(map[string]Folder, len(folders))
	for _, f := range folders {
		next[f.Path] = f
	}

	for path := range w.watched {
		if _, stillWanted := next[path]; !stillWanted {
			_ = w.watcher.Remove(path)
		}
	}
	w.watched = next
	w.mu.Unlock()

	for _, f := range folders {
		w.addRecursive(f.Path)
	}
}

func (w *EfficientWatcher) SetVerboseLogging(verbose bool) {
	w.mu.Lock()
	w.verbose = verbose
	w.mu.Unlock()
}

func (w *EfficientWatcher) Dispose() {
	close(w.done)
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}
