//go:build !windows

package diskprovider

import "os"

// openWritable implements the non-Windows write-open: create the file if
// absent, truncate it if present, then hand back a single *os.File open
// for both reading and writing (a subsequent Read call against the same fd
// is legal — a writable descriptor is never restricted to write-only use).
func (p *Provider) openWritable(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
}
