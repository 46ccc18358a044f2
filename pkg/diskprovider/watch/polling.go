package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PollingWatcher periodically stats every file under the watched roots and
// diffs against the previous snapshot. Used when the caller forces polling
// (e.g. for network mounts where native notification APIs are unreliable).
// No third-party polling-watch library appears anywhere in the example
// pack (see DESIGN.md), so this is a plain stdlib implementation.
type PollingWatcher struct {
	onChange     func([]Change)
	onLogMessage func(LogMessage)
	interval     time.Duration

	mu       sync.Mutex
	verbose  bool
	folders  []Folder
	snapshot map[string]time.Time

	stop chan struct{}
}

// NewPollingWatcher constructs a polling backend with the given period.
func NewPollingWatcher(interval time.Duration) Constructor {
	return func(folders []Folder, onChange func([]Change), onLogMessage func(LogMessage), verbose bool) RecursiveWatcher {
		w := &PollingWatcher{
			onChange:     onChange,
			onLogMessage: onLogMessage,
			interval:     interval,
			verbose:      verbose,
			snapshot:     make(map[string]time.Time),
			stop:         make(chan struct{}),
		}
		w.Watch(folders)
		go w.loop()
		return w
	}
}

func (w *PollingWatcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-w.stop:
			return
		}
	}
}

func (w *PollingWatcher) poll() {
	w.mu.Lock()
	folders := append([]Folder{}, w.folders...)
	prev := w.snapshot
	w.mu.Unlock()

	next := make(map[string]time.Time)
	var changes []Change

	for _, f := range folders {
		_ = filepath.Walk(f.Path, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if excluded(f.Excludes, filepath.Base(path)) {
				return nil
			}
			next[path] = info.ModTime()
			if prevMtime, existed := prev[path]; !existed {
				changes = append(changes, Change{Type: ChangeAdded, Path: path})
			} else if !prevMtime.Equal(info.ModTime()) {
				changes = append(changes, Change{Type: ChangeUpdated, Path: path})
			}
			return nil
		})
	}

	for path := range prev {
		if _, stillExists := next[path]; !stillExists {
			changes = append(changes, Change{Type: ChangeDeleted, Path: path})
		}
	}

	w.mu.Lock()
	w.snapshot = next
	w.mu.Unlock()

	if len(changes) > 0 {
		w.onChange(changes)
	}
}

func excluded(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func (w *PollingWatcher) Watch(folders []Folder) {
	w.mu.Lock()
	w.folders = folders
	w.mu.Unlock()
}

func (w *PollingWatcher) SetVerboseLogging(verbose bool) {
	w.mu.Lock()
	w.verbose = verbose
	w.mu.Unlock()
}

func (w *PollingWatcher) Dispose() {
	close(w.stop)
}
