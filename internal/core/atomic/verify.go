package atomic

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// verifyCopy walks src and checks every entry has a twin under dst with
// the same type and, for regular files and symlinks, the same content
func verifyCopy(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		twin := filepath.Join(dst, rel)

		srcInfo, err := os.Lstat(path)
		if err != nil {
			return err
		}
		dstInfo, err := os.Lstat(twin)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCopyMismatch, err)
		}

		if srcInfo.Mode().Type() != dstInfo.Mode().Type() {
			return fmt.Errorf("%w: %s: type differs", ErrCopyMismatch, rel)
		}

		switch {
		case srcInfo.Mode().IsRegular():
			if srcInfo.Size() != dstInfo.Size() {
				return fmt.Errorf("%w: %s: size differs", ErrCopyMismatch, rel)
			}
			same, err := sameContent(path, twin)
			if err != nil {
				return err
			}
			if !same {
				return fmt.Errorf("%w: %s: content differs", ErrCopyMismatch, rel)
			}
		case srcInfo.Mode()&fs.ModeSymlink != 0:
			want, err := os.Readlink(path)
			if err != nil {
				return err
			}
			got, err := os.Readlink(twin)
			if err != nil {
				return err
			}
			if want != got {
				return fmt.Errorf("%w: %s: link target differs", ErrCopyMismatch, rel)
			}
		}
		return nil
	})
}

func sameContent(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer fb.Close()

	const chunk = 64 * 1024
	bufA := make([]byte, chunk)
	bufB := make([]byte, chunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		doneB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if errA != nil && !doneA {
			return false, errA
		}
		if errB != nil && !doneB {
			return false, errB
		}
		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}
