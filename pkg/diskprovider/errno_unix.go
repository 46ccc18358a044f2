//go:build !windows

package diskprovider

import (
	"errors"
	"syscall"
)

func asErrno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

func errnoToCode(errno syscall.Errno) Code {
	switch errno {
	case syscall.ENOENT:
		return CodeFileNotFound
	case syscall.EISDIR:
		return CodeFileIsADirectory
	case syscall.ENOTDIR:
		return CodeFileNotADirectory
	case syscall.EEXIST:
		return CodeFileExists
	case syscall.EPERM, syscall.EACCES:
		return CodeNoPermissions
	default:
		return CodeUnknown
	}
}
