package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyWatcherDelegatesToEfficientWatcher(t *testing.T) {
	dir := t.TempDir()

	var changes []Change
	onChange := func(cs []Change) { changes = append(changes, cs...) }
	onLog := func(LogMessage) {}

	w := NewLegacyWatcher([]Folder{{Path: dir}}, onChange, onLog, false)
	defer w.Dispose()

	// A RecursiveWatcher, regardless of backend, reconfigures without panicking.
	assert.NotPanics(t, func() { w.Watch([]Folder{{Path: dir}}) })
	assert.NotPanics(t, func() { w.SetVerboseLogging(true) })
}

func TestPollingWatcherReportsAddedFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var changes []Change
	onChange := func(cs []Change) {
		mu.Lock()
		changes = append(changes, cs...)
		mu.Unlock()
	}
	onLog := func(LogMessage) {}

	w := NewPollingWatcher(20 * time.Millisecond)([]Folder{{Path: dir}}, onChange, onLog, false)
	defer w.Dispose()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range changes {
			if c.Type == ChangeAdded {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestSimpleWatcherReportsUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0o644))

	var mu sync.Mutex
	var changes []Change
	onChange := func(cs []Change) {
		mu.Lock()
		changes = append(changes, cs...)
		mu.Unlock()
	}
	onLog := func(LogMessage) {}

	w := NewSimpleWatcher(dir, onChange, onLog)
	defer w.Dispose()

	assert.NotPanics(t, func() { w.SetVerboseLogging(true) })

	require.NoError(t, os.WriteFile(path, []byte("updated content"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) > 0
	}, time.Second, 10*time.Millisecond)
}
