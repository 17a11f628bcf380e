//go:build windows

package atomic

import (
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// sameDevice compares the serial numbers of the volumes holding src and
// the directory that will hold dst. Volume mount points are followed.
func sameDevice(src, dst string) (bool, error) {
	srcSerial, err := volumeSerial(src)
	if err != nil {
		return false, err
	}
	dstSerial, err := volumeSerial(filepath.Dir(dst))
	if err != nil {
		return false, err
	}
	return srcSerial == dstSerial, nil
}

func volumeSerial(path string) (uint32, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	buf := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumePathName(p, &buf[0], uint32(len(buf))); err != nil {
		return 0, fmt.Errorf("volume of %q: %w", path, err)
	}

	var serial uint32
	if err := windows.GetVolumeInformation(&buf[0], nil, 0, &serial, nil, nil, nil, 0); err != nil {
		return 0, fmt.Errorf("volume information of %q: %w", path, err)
	}
	return serial, nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
