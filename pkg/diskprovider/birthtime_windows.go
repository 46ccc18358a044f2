package diskprovider

import (
	"os"
	"syscall"
	"time"
)

// birthTime reads the true creation time Windows exposes natively via
// WIN32_FIND_DATA / Win32FileAttributeData, which os.Stat's Sys() already
// carries on this platform.
func birthTime(path string, info os.FileInfo) time.Time {
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, d.CreationTime.Nanoseconds())
}
