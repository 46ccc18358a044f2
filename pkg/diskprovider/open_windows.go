package diskprovider

import (
	"os"

	"golang.org/x/sys/windows"
)

// openWritable implements the Windows write-open. Opening with O_TRUNC on
// Windows drops hidden/system attributes on some filesystems, so instead of
// truncating at open time this creates the file if it's missing and
// otherwise reopens it in-place with O_RDWR (no O_TRUNC), captures the
// existing attribute bits, truncates to zero length once the descriptor is
// in hand, and restores the captured attributes afterward.
func (p *Provider) openWritable(path string) (*os.File, error) {
	attrs, hadAttrs := getFileAttributes(path)

	file, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if os.IsNotExist(err) {
		return os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	}
	if err != nil {
		return nil, err
	}

	if truncErr := file.Truncate(0); truncErr != nil {
		file.Close()
		return nil, truncErr
	}

	if hadAttrs {
		restoreFileAttributes(path, attrs)
	}

	return file, nil
}

// getFileAttributes reads the Windows file attribute bitmask, returning
// false if it can't be read (e.g. the caller is about to create the file).
func getFileAttributes(path string) (uint32, bool) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return 0, false
	}
	return attrs, true
}

// restoreFileAttributes writes back a previously-captured attribute
// bitmask, swallowing errors since this is a best-effort preservation step.
func restoreFileAttributes(path string, attrs uint32) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return
	}
	_ = windows.SetFileAttributes(ptr, attrs)
}
