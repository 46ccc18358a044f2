package diskprovider

import (
	"bufio"
	"io"
	"os"
)

// largeWriteThreshold matches dittofs's WriteContent chunking cutover
// (pkg/content/fs/fs_write.go): writes at or above this size are issued as
// fixed-size chunks rather than one Write call, so each Write (and its
// retry) covers at most writeChunkSize bytes.
const largeWriteThreshold = 10 * 1024 * 1024

// writeChunkSize is the chunk size used once a write crosses
// largeWriteThreshold, matching dittofs's WriteAt chunking.
const writeChunkSize = 256 * 1024

// ReadFile reads an entire file's contents.
func (p *Provider) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, toFileSystemProviderError(err, path)
	}
	return data, nil
}

// WriteFile writes content to path, going through the same
// open({create:true,unlock}) -> write(fd, 0, content) -> close(fd) pipeline
// as the descriptor-based API: a plain os.WriteFile would skip both the
// per-OS open-and-truncate handling in openWritable and the
// canFlush-gated fdatasync Close performs, silently dropping the durability
// guarantee a caller gets from every other write path. The existence probe
// below lets Create/Overwrite fail fast with a FileExists/FileNotFound error
// before any bytes are written, rather than relying on O_EXCL races to
// surface the right portable code.
func (p *Provider) WriteFile(path string, content []byte, opts WriteFileOptions) error {
	info, statErr := os.Lstat(path)
	exists := statErr == nil
	if statErr != nil && !os.IsNotExist(statErr) {
		return toWriteError(statErr, path)
	}

	if exists && !opts.Overwrite {
		return newProviderError(CodeFileExists, path, nil)
	}
	if !exists && !opts.Create {
		return newProviderError(CodeFileNotFound, path, nil)
	}
	if exists && info.IsDir() {
		return newProviderError(CodeFileIsADirectory, path, nil)
	}

	fd, err := p.Open(path, OpenOptions{Create: true, Unlock: opts.Unlock})
	if err != nil {
		return err
	}

	if err := p.writeAllAt(fd, content); err != nil {
		p.Close(fd)
		return err
	}

	return p.Close(fd)
}

// writeAllAt delivers content to fd, chunking writes at or above
// largeWriteThreshold rather than handing the whole buffer to one Write
// call. The chunks are slices of content, not copies. Each chunk goes
// through Write's own retry loop.
func (p *Provider) writeAllAt(fd uint64, content []byte) error {
	if len(content) < largeWriteThreshold {
		_, err := p.Write(fd, 0, content)
		return err
	}

	for offset := 0; offset < len(content); offset += writeChunkSize {
		end := offset + writeChunkSize
		if end > len(content) {
			end = len(content)
		}
		if _, err := p.Write(fd, uint64(offset), content[offset:end]); err != nil {
			return err
		}
	}
	return nil
}

// ReadFileStream opens path for streaming reads. The returned
// io.ReadCloser buffers reads in chunks of the provider's configured
// BufferSize; the next Read call after cancel fires returns early with
// io.ErrClosedPipe instead of delivering more file data.
func (p *Provider) ReadFileStream(path string, cancel <-chan struct{}) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, toFileSystemProviderError(err, path)
	}
	return &cancellableReader{
		file:   file,
		reader: bufio.NewReaderSize(file, p.opts.BufferSize),
		cancel: cancel,
	}, nil
}

type cancellableReader struct {
	file   *os.File
	reader *bufio.Reader
	cancel <-chan struct{}
}

func (r *cancellableReader) Read(p []byte) (int, error) {
	select {
	case <-r.cancel:
		return 0, io.ErrClosedPipe
	default:
	}
	return r.reader.Read(p)
}

func (r *cancellableReader) Close() error {
	return r.file.Close()
}
