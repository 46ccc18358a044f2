package diskprovider

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "descriptor-*")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDescriptorTableAllocateStartsAtPosZero(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "")

	entry, ok := table.get(fd)
	require.True(t, ok)
	assert.Equal(t, uint64(0), entry.pos)
	assert.True(t, entry.hasPos)
	assert.False(t, table.isWritable(fd))
}

func TestDescriptorTableIsWritableTracksResource(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "/tmp/some/path")

	assert.True(t, table.isWritable(fd))
}

func TestDescriptorTableNormalizePosMatchesCache(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "")

	// Cached pos is 0, requesting 0 should use current-position (nil).
	assert.Nil(t, table.normalizePos(fd, 0))

	// Requesting a different offset forces an explicit seek.
	got := table.normalizePos(fd, 42)
	require.NotNil(t, got)
	assert.Equal(t, uint64(42), *got)
}

func TestDescriptorTableNormalizePosUnknownFD(t *testing.T) {
	table := newDescriptorTable()
	got := table.normalizePos(999, 0)
	require.NotNil(t, got)
	assert.Equal(t, uint64(0), *got)
}

func TestDescriptorTableFinalizePosAdvancesOnSuccess(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "")

	table.finalizePos(fd, nil, 10, nil)

	entry, ok := table.get(fd)
	require.True(t, ok)
	assert.Equal(t, uint64(10), entry.pos)
	assert.True(t, entry.hasPos)
}

func TestDescriptorTableFinalizePosClearsOnFailure(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "")

	table.finalizePos(fd, nil, 0, os.ErrClosed)

	entry, ok := table.get(fd)
	require.True(t, ok)
	assert.False(t, entry.hasPos)
}

func TestDescriptorTableFinalizePosLeavesExplicitSeekAlone(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "")

	seekTo := uint64(5)
	table.finalizePos(fd, &seekTo, 3, nil)

	entry, ok := table.get(fd)
	require.True(t, ok)
	assert.Equal(t, uint64(0), entry.pos)
	assert.True(t, entry.hasPos)
}

func TestDescriptorTableCloseRemovesEntry(t *testing.T) {
	table := newDescriptorTable()
	fd := table.allocate(openTempFile(t), "")

	_, ok := table.close(fd)
	assert.True(t, ok)

	_, ok = table.get(fd)
	assert.False(t, ok)

	_, ok = table.close(fd)
	assert.False(t, ok)
}

func TestDescriptorTableCount(t *testing.T) {
	table := newDescriptorTable()
	assert.Equal(t, 0, table.count())

	fd1 := table.allocate(openTempFile(t), "")
	table.allocate(openTempFile(t), "")
	assert.Equal(t, 2, table.count())

	table.close(fd1)
	assert.Equal(t, 1, table.count())
}
