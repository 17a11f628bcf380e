//go:build !windows

package atomic

import (
	"errors"
	"io/fs"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// sameDevice reports whether src and the directory that will hold dst
// live on the same filesystem
func sameDevice(src, dst string) (bool, error) {
	var s, d unix.Stat_t
	if err := unix.Lstat(src, &s); err != nil {
		return false, &fs.PathError{Op: "lstat", Path: src, Err: err}
	}
	if err := unix.Stat(filepath.Dir(dst), &d); err != nil {
		return false, &fs.PathError{Op: "stat", Path: filepath.Dir(dst), Err: err}
	}
	return s.Dev == d.Dev, nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
