// Package diskprovider implements a local disk filesystem provider: stat,
// readdir, bulk and positional I/O, mkdir/delete/rename/copy, and a
// multiplexed recursive file watcher, all behind a single Provider type
// consumed by a higher-level virtual file service.
package diskprovider

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Code is the portable error taxonomy every public operation fails with.
//
// Native OS errors never escape the provider directly — they are always
// translated to one of these via toFileSystemProviderError.
type Code int

const (
	// CodeUnknown covers anything that doesn't map to a more specific code.
	CodeUnknown Code = iota
	CodeFileNotFound
	CodeFileIsADirectory
	CodeFileNotADirectory
	CodeFileExists
	CodeNoPermissions
	CodeFileWriteLocked
)

func (c Code) String() string {
	switch c {
	case CodeFileNotFound:
		return "FileNotFound"
	case CodeFileIsADirectory:
		return "FileIsADirectory"
	case CodeFileNotADirectory:
		return "FileNotADirectory"
	case CodeFileExists:
		return "FileExists"
	case CodeNoPermissions:
		return "NoPermissions"
	case CodeFileWriteLocked:
		return "FileWriteLocked"
	default:
		return "Unknown"
	}
}

// ProviderError is the wrapped, human-readable form of a Code.
//
// Wrapping is idempotent: wrapping an already-wrapped error returns it
// unchanged.
type ProviderError struct {
	Code    Code
	Path    string
	Message string
	cause   error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Path)
	}
	return e.Code.String()
}

func (e *ProviderError) Unwrap() error { return e.cause }

// newProviderError builds a new *ProviderError around cause. It does not
// check whether cause is already wrapped; toFileSystemProviderError does.
func newProviderError(code Code, path string, cause error) *ProviderError {
	return &ProviderError{Code: code, Path: path, cause: cause}
}

// toFileSystemProviderError translates a native error into the portable
// taxonomy. Already-wrapped errors pass through unchanged.
func toFileSystemProviderError(err error, path string) error {
	if err == nil {
		return nil
	}

	var existing *ProviderError
	if errors.As(err, &existing) {
		return err
	}

	code := CodeUnknown
	switch {
	case errors.Is(err, os.ErrNotExist):
		code = CodeFileNotFound
	case errors.Is(err, os.ErrExist):
		code = CodeFileExists
	case errors.Is(err, os.ErrPermission):
		code = CodeNoPermissions
	default:
		if errno, ok := asErrno(err); ok {
			code = errnoToCode(errno)
		}
	}

	return newProviderError(code, path, err)
}

// toWriteError is the write-path variant of toFileSystemProviderError: when
// the derived code is NoPermissions and we know the target path, it probes
// the file mode and upgrades to FileWriteLocked if the owner-write bit is
// clear. The probe is best effort — a failing stat leaves
// the original error untouched.
func toWriteError(err error, path string) error {
	wrapped := toFileSystemProviderError(err, path)
	if wrapped == nil {
		return nil
	}

	var pe *ProviderError
	if !errors.As(wrapped, &pe) || pe.Code != CodeNoPermissions || path == "" {
		return wrapped
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return wrapped
	}
	if info.Mode().Perm()&0o200 == 0 {
		pe.Code = CodeFileWriteLocked
	}
	return wrapped
}

// IsNotFound reports whether err is (or wraps) a FileNotFound provider error.
func IsNotFound(err error) bool { return hasCode(err, CodeFileNotFound) }

// IsExists reports whether err is (or wraps) a FileExists provider error.
func IsExists(err error) bool { return hasCode(err, CodeFileExists) }

// IsWriteLocked reports whether err is (or wraps) a FileWriteLocked provider error.
func IsWriteLocked(err error) bool { return hasCode(err, CodeFileWriteLocked) }

// IsNoPermissions reports whether err is (or wraps) a NoPermissions provider error.
func IsNoPermissions(err error) bool { return hasCode(err, CodeNoPermissions) }

func hasCode(err error, code Code) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == code
}

// errnoToCode maps the handful of native errno values callers care about
// by name (ENOENT, EISDIR, ENOTDIR, EEXIST, EPERM/EACCES). It and asErrno
// are implemented per-OS in errno_unix.go / errno_windows.go since the
// underlying syscall.Errno values aren't portable across build targets.

// isOpaqueMutationErrno reports whether errno is one of the rename/copy
// failure modes worth naming explicitly in the wrapped error message
// (symlink cycles, file-in-use locks, and path-length overruns), rather
// than falling back to the OS's raw message.
func isOpaqueMutationErrno(errno syscall.Errno) bool {
	switch errno {
	case syscall.EINVAL, syscall.EBUSY, syscall.ENAMETOOLONG:
		return true
	default:
		return false
	}
}
