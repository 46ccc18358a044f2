package diskprovider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	p := NewProvider(Options{})
	s, err := p.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, FileTypeFile, s.Type)
	assert.Equal(t, uint64(5), s.Size)
}

func TestStatDirectory(t *testing.T) {
	dir := t.TempDir()

	p := NewProvider(Options{})
	s, err := p.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, FileTypeDirectory, s.Type)
}

func TestStatMissingFile(t *testing.T) {
	p := NewProvider(Options{})
	_, err := p.Stat(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, IsNotFound(err))
}

func TestStatSymlinkToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	p := NewProvider(Options{})
	s, err := p.Stat(link)
	require.NoError(t, err)
	assert.Equal(t, FileTypeFile|FileTypeSymbolicLink, s.Type)
}

func TestStatDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), link))

	p := NewProvider(Options{})
	s, err := p.Stat(link)
	require.NoError(t, err)
	assert.Equal(t, FileTypeUnknown|FileTypeSymbolicLink, s.Type)
}

func TestReaddirListsEntriesWithTypes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	p := NewProvider(Options{})
	entries, err := p.Readdir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]FileType{}
	for _, e := range entries {
		byName[e.Name] = e.Type
	}
	assert.Equal(t, FileTypeFile, byName["a.txt"])
	assert.Equal(t, FileTypeDirectory, byName["sub"])
}

func TestReaddirResolvesSymlinkTarget(t *testing.T) {
	dir := t.TempDir()
	subdir := filepath.Join(dir, "real-dir")
	require.NoError(t, os.Mkdir(subdir, 0o755))
	link := filepath.Join(dir, "link-to-dir")
	require.NoError(t, os.Symlink(subdir, link))

	p := NewProvider(Options{})
	entries, err := p.Readdir(dir)
	require.NoError(t, err)

	var found bool
	for _, e := range entries {
		if e.Name == "link-to-dir" {
			found = true
			assert.Equal(t, FileTypeDirectory|FileTypeSymbolicLink, e.Type)
		}
	}
	assert.True(t, found)
}

func TestReaddirMissingDirectory(t *testing.T) {
	p := NewProvider(Options{})
	_, err := p.Readdir(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, IsNotFound(err))
}
