//go:build !linux && !darwin && !windows

package diskprovider

import (
	"os"
	"time"
)

// birthTime falls back to mtime on platforms without a stdlib-exposed birth
// time (e.g. the BSDs via this build, which do have Birthtimespec in
// syscall.Stat_t but aren't a target this module is grounded against).
func birthTime(path string, info os.FileInfo) time.Time {
	return info.ModTime()
}
