package atomic

import (
	"io/fs"
	"os"
)

// renameChecked refuses an existing dst before renaming. The check and the
// rename are two steps, so a file created in between is overwritten.
func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
