package diskprovider

import (
	"os"
	"path/filepath"
	"sync"
)

// Stat resolves symlinks with a combined stat that yields both the target
// stat and a dangling flag.
func (p *Provider) Stat(path string) (Stat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Stat{}, toFileSystemProviderError(err, path)
	}

	isSymlink := info.Mode()&os.ModeSymlink != 0
	if !isSymlink {
		return statFromInfo(path, info, false), nil
	}

	target, err := os.Stat(path)
	if err != nil {
		// Dangling symlink: never File or Directory.
		return Stat{Type: FileTypeUnknown | FileTypeSymbolicLink}, nil
	}

	s := statFromInfo(path, target, false)
	s.Type |= FileTypeSymbolicLink
	return s, nil
}

func statFromInfo(path string, info os.FileInfo, isSymlink bool) Stat {
	var t FileType
	switch {
	case info.IsDir():
		t = FileTypeDirectory
	case info.Mode().IsRegular():
		t = FileTypeFile
	default:
		t = FileTypeUnknown
	}
	if isSymlink {
		t |= FileTypeSymbolicLink
	}

	return Stat{
		Type:  t,
		Ctime: toMillis(birthTime(path, info)),
		Mtime: toMillis(info.ModTime()),
		Size:  uint64(info.Size()),
	}
}

// Readdir enumerates the directory and, for each symlink entry, issues a
// recursive Stat on the joined path so the caller can tell link-to-directory
// from link-to-file. Per-entry failures are logged and
// dropped, not propagated; only a failure to open the directory itself
// propagates.
func (p *Provider) Readdir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, toFileSystemProviderError(err, path)
	}

	results := make([]DirEntry, len(entries))

	const workers = 8
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, entry := range entries {
		i, entry := i, entry
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = p.readdirEntry(path, entry)
		}()
	}
	wg.Wait()

	// readdirEntry leaves a failed entry with an empty name; drop those.
	kept := results[:0]
	for _, e := range results {
		if e.Name != "" {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func (p *Provider) readdirEntry(dir string, entry os.DirEntry) DirEntry {
	if entry.Type()&os.ModeSymlink == 0 {
		t := FileTypeUnknown
		switch {
		case entry.IsDir():
			t = FileTypeDirectory
		case entry.Type().IsRegular():
			t = FileTypeFile
		}
		return DirEntry{Name: entry.Name(), Type: t}
	}

	joined := filepath.Join(dir, entry.Name())
	s, err := p.Stat(joined)
	if err != nil {
		p.log.Warn("readdir: stat symlink %s: %v", joined, err)
		return DirEntry{}
	}
	return DirEntry{Name: entry.Name(), Type: s.Type}
}
