package diskprovider

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Mkdir creates a directory, delegating straight to the OS.
func (p *Provider) Mkdir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return toFileSystemProviderError(err, path)
	}
	return nil
}

// Delete removes a file or, with Recursive set, a whole directory tree.
// The recursive strategy is move-then-delete: rename the target into a
// temp sibling first, then unlink recursively, so a still-open handle on
// Windows blocks the final unlink rather than the rename the caller is
// waiting on.
func (p *Provider) Delete(path string, opts DeleteOptions) error {
	if !opts.Recursive {
		if err := os.Remove(path); err != nil {
			return toFileSystemProviderError(err, path)
		}
		return nil
	}

	parent := filepath.Dir(path)
	staging, err := os.MkdirTemp(parent, ".diskprovider-delete-*")
	if err != nil {
		return toFileSystemProviderError(err, path)
	}

	moved := filepath.Join(staging, filepath.Base(path))
	if err := os.Rename(path, moved); err != nil {
		os.Remove(staging)
		return toFileSystemProviderError(err, path)
	}

	if err := os.RemoveAll(staging); err != nil {
		return toFileSystemProviderError(err, path)
	}
	return nil
}

// Rename moves from to to, sharing validateTargetDeleted with Copy.
func (p *Provider) Rename(from, to string, opts MoveCopyOptions) error {
	if err := p.validateTargetDeleted(from, to, opts, false); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	if err := os.Rename(from, to); err != nil {
		return p.wrapMutationError(err, from, to)
	}
	return nil
}

// Copy copies from to to with preserveSymlinks true, sharing
// validateTargetDeleted with Rename.
func (p *Provider) Copy(from, to string, opts MoveCopyOptions) error {
	if err := p.validateTargetDeleted(from, to, opts, true); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	if err := copyTree(from, to); err != nil {
		return p.wrapMutationError(err, from, to)
	}
	return nil
}

// validateTargetDeleted implements the preamble shared by Rename and Copy.
// isCopy gates the case-only-copy-is-nonsensical rule, which only applies
// to copy.
func (p *Provider) validateTargetDeleted(from, to string, opts MoveCopyOptions, isCopy bool) error {
	if from == to {
		return nil
	}

	if !isCaseSensitiveFS() && strings.EqualFold(from, to) {
		if isCopy {
			return newProviderError(CodeFileExists, to, nil)
		}
		return nil
	}

	if _, err := os.Lstat(to); err == nil {
		if !opts.Overwrite {
			return newProviderError(CodeFileExists, to, nil)
		}
		if err := p.Delete(to, DeleteOptions{Recursive: true}); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return toFileSystemProviderError(err, to)
	}

	return nil
}

// wrapMutationError rewrites the otherwise-opaque EINVAL/EBUSY/ENAMETOOLONG
// errnos into a message naming the source basename and target parent
// basename, since the raw errno alone tells a caller nothing useful.
func (p *Provider) wrapMutationError(err error, from, to string) error {
	wrapped := toFileSystemProviderError(err, from)

	if errno, ok := asErrno(err); ok && isOpaqueMutationErrno(errno) {
		msg := fmt.Sprintf("cannot move/copy %q into %q: %v",
			filepath.Base(from), filepath.Base(filepath.Dir(to)), err)
		if pe, ok := wrapped.(*ProviderError); ok {
			pe.Message = msg
			return pe
		}
	}
	return wrapped
}

// copyTree copies from to to, preserving symlinks as symlinks rather than
// following them.
func copyTree(from, to string) error {
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(from)
		if err != nil {
			return err
		}
		return os.Symlink(target, to)
	}

	if info.IsDir() {
		if err := os.MkdirAll(to, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := os.ReadDir(from)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(filepath.Join(from, entry.Name()), filepath.Join(to, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	return copyFile(from, to, info.Mode().Perm())
}

func copyFile(from, to string, perm os.FileMode) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Sync()
}
