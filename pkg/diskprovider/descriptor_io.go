package diskprovider

import (
	"io"
	"os"
	"time"
)

const (
	writeRetryAttempts = 3
	writeRetryDelay    = 100 * time.Millisecond
)

// Open implements open(): write-unlock preflight, the per-OS writable open
// (attribute-preserving open-then-truncate on Windows), and fd bookkeeping.
func (p *Provider) Open(path string, opts OpenOptions) (uint64, error) {
	writable := opts.Create

	if writable && opts.Unlock {
		p.bestEffortUnlock(path)
	}

	file, err := p.openForIntent(path, writable)
	if err != nil {
		if writable {
			return 0, toWriteError(err, path)
		}
		return 0, toFileSystemProviderError(err, path)
	}

	resource := ""
	if writable {
		resource = path
	}
	fd := p.descriptors.allocate(file, resource)
	return fd, nil
}

// bestEffortUnlock sets the owner-write bit if clear, swallowing errors —
// an unlock attempt is best-effort and never fails the caller's Open.
func (p *Provider) bestEffortUnlock(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0o200 == 0 {
		_ = os.Chmod(path, info.Mode().Perm()|0o200)
	}
}

// Close implements close(): drop from the position cache,
// fdatasync on writable descriptors while canFlush holds, then the native
// close.
func (p *Provider) Close(fd uint64) error {
	entry, ok := p.descriptors.close(fd)
	if !ok {
		return newProviderError(CodeFileNotFound, "", nil)
	}

	if entry.resource != "" && p.canFlush.Load() {
		if err := entry.file.Sync(); err != nil {
			p.canFlush.Store(false)
			p.log.Warn("fdatasync failed, disabling future flushes: %v", err)
		}
	}

	if err := entry.file.Close(); err != nil {
		return toFileSystemProviderError(err, "")
	}
	return nil
}

// Read implements read(): normalize the position, perform
// the native read, and finalize pos[fd] in all cases. Reads are not
// retried.
func (p *Provider) Read(fd uint64, pos uint64, dst []byte) (int, error) {
	entry, ok := p.descriptors.get(fd)
	if !ok {
		return 0, newProviderError(CodeFileNotFound, "", nil)
	}

	normalized := p.descriptors.normalizePos(fd, pos)

	var n int
	var err error
	if normalized == nil {
		n, err = entry.file.Read(dst)
	} else {
		n, err = entry.file.ReadAt(dst, int64(*normalized))
	}

	// A short read at EOF is success, not failure: it still advanced the
	// file position by n bytes, so the position cache treats it as one.
	if err == io.EOF {
		p.descriptors.finalizePos(fd, normalized, n, nil)
		return n, nil
	}

	p.descriptors.finalizePos(fd, normalized, n, err)

	if err != nil {
		return n, toFileSystemProviderError(err, "")
	}
	return n, nil
}

// Write implements write(): same position-cache protocol as
// Read, wrapped in a 3-attempt/100ms retry loop, since open() truncates the
// file first and a failed write would otherwise lose the caller's data.
func (p *Provider) Write(fd uint64, pos uint64, src []byte) (int, error) {
	entry, ok := p.descriptors.get(fd)
	if !ok {
		return 0, newProviderError(CodeFileNotFound, "", nil)
	}

	var n int
	var err error

	for attempt := 0; attempt < writeRetryAttempts; attempt++ {
		normalized := p.descriptors.normalizePos(fd, pos)

		if normalized == nil {
			n, err = entry.file.Write(src)
		} else {
			n, err = entry.file.WriteAt(src, int64(*normalized))
		}

		p.descriptors.finalizePos(fd, normalized, n, err)

		if err == nil {
			return n, nil
		}
		if attempt < writeRetryAttempts-1 {
			time.Sleep(writeRetryDelay)
		}
	}

	return n, toWriteError(err, entry.resource)
}

// openForIntent implements the open-flag selection: read-only descriptors
// are opened here directly, and write-capable ones go through openWritable,
// which lives in open_unix.go (O_TRUNC open) and open_windows.go
// (open-then-truncate that preserves file attributes).
func (p *Provider) openForIntent(path string, writable bool) (*os.File, error) {
	if !writable {
		return os.OpenFile(path, os.O_RDONLY, 0)
	}
	return p.openWritable(path)
}
