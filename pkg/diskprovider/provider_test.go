package diskprovider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitiesIncludesCaseSensitivityOnLinux(t *testing.T) {
	p := NewProvider(Options{})
	caps := p.Capabilities()

	assert.NotZero(t, caps&CapFileReadWrite)
	assert.NotZero(t, caps&CapFileOpenReadWriteClose)
	assert.NotZero(t, caps&CapFileReadStream)
	assert.NotZero(t, caps&CapFileFolderCopy)
	if isCaseSensitiveFS() {
		assert.NotZero(t, caps&CapPathCaseSensitive)
	}
}

func TestCapabilitiesIsComputedOnce(t *testing.T) {
	p := NewProvider(Options{})
	first := p.Capabilities()
	second := p.Capabilities()
	assert.Equal(t, first, second)
}

func TestWatchRecursiveCoalescesBurstIntoOneBackend(t *testing.T) {
	dir := t.TempDir()

	p := NewProvider(Options{UsePolling: true, PollingInterval: 50})
	defer p.Dispose()

	disposeA := p.WatchRecursive(dir, nil)
	disposeB := p.WatchRecursive(dir, nil)
	disposeC := p.WatchRecursive(dir, nil)

	require.Eventually(t, func() bool {
		p.watchMu.Lock()
		defer p.watchMu.Unlock()
		return p.backend != nil
	}, time.Second, 10*time.Millisecond)

	p.watchMu.Lock()
	backend := p.backend
	folders := len(p.recursiveFoldersToWatch)
	p.watchMu.Unlock()

	assert.NotNil(t, backend)
	assert.Equal(t, 3, folders)

	disposeA()
	disposeB()
	disposeC()

	require.Eventually(t, func() bool {
		p.watchMu.Lock()
		defer p.watchMu.Unlock()
		return len(p.recursiveFoldersToWatch) == 0
	}, time.Second, 10*time.Millisecond)

	// The backend stays alive even once every request has been disposed.
	p.watchMu.Lock()
	stillAlive := p.backend
	p.watchMu.Unlock()
	assert.NotNil(t, stillAlive)
}

func TestDisposeTearsDownActiveBackend(t *testing.T) {
	dir := t.TempDir()

	p := NewProvider(Options{UsePolling: true, PollingInterval: 50})
	p.WatchRecursive(dir, nil)

	require.Eventually(t, func() bool {
		p.watchMu.Lock()
		defer p.watchMu.Unlock()
		return p.backend != nil
	}, time.Second, 10*time.Millisecond)

	assert.NotPanics(t, func() { p.Dispose() })
}
