package diskprovider

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime reads the true filesystem birth time on Linux via statx(2)'s
// STATX_BTIME, which the stdlib's stat(2) wrapper doesn't expose. Not every
// filesystem reports it (tmpfs, some older ext layouts), so a missing
// STATX_BTIME bit or a failed statx call (e.g. no kernel support) falls back
// to the inode change time, and to mtime only when info carries no
// syscall.Stat_t.
func birthTime(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err == nil {
		if stx.Mask&unix.STATX_BTIME != 0 {
			return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
		}
	}

	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
}
