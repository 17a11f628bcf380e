//go:build !windows

package xdg

import (
	"os"
	"syscall"
)

// ownedBy reports whether the file was created by uid
func ownedBy(info os.FileInfo, uid int) bool {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	return int(st.Uid) == uid
}
