package core

import (
	"io/fs"
	"path/filepath"
)

// DirSize walks path and returns the total size of all regular files
// underneath it. Errors on individual entries are ignored so a single
// unreadable subdirectory doesn't abort the walk; the result is always
// best-effort and advisory only.
func DirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries; keep walking siblings.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}
