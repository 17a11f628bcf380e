package atomic

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
)

// Move moves src to dst without ever replacing an existing dst.
//
// Within one device this is a single rename. Across devices the source is
// copied next to dst, compared against the source, renamed into place and
// only then removed. At every step at least one complete copy exists.
func Move(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}

	if _, err := os.Lstat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newMoveError(StageStat, src, dst, ErrSourceNotFound)
		}
		return newMoveError(StageStat, src, dst, err)
	}

	if _, err := os.Lstat(dst); err == nil {
		return newMoveError(StagePrepare, src, dst, ErrDestinationExists)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return newMoveError(StagePrepare, src, dst, err)
	}

	local, err := sameDevice(src, dst)
	if err != nil {
		slog.Debug("failed to compare devices, trying rename", "src", src, "dst", dst, "error", err)
		local = true
	}
	if local {
		err := renameNoReplace(src, dst)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, fs.ErrExist):
			return newMoveError(StageRename, src, dst, ErrDestinationExists)
		case !isCrossDevice(err):
			return newMoveError(StageRename, src, dst, err)
		}
	}

	return copyAndDelete(src, dst)
}

// copyAndDelete stages a copy of src beside dst, checks it, commits it to
// dst and finally removes src. A failure before the commit removes the
// staged copy and leaves src alone; a failure removing src keeps dst.
func copyAndDelete(src, dst string) error {
	tmp := tempSibling(dst)
	slog.Debug("copying across devices", "src", src, "tmp", tmp)

	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}

	if err := cp.Copy(src, tmp, opts); err != nil {
		return newMoveError(StageCopy, src, dst, errors.Join(err, cleanup(tmp)))
	}

	if err := verifyCopy(src, tmp); err != nil {
		return newMoveError(StageVerify, src, dst, errors.Join(err, cleanup(tmp)))
	}

	if err := renameNoReplace(tmp, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = ErrDestinationExists
		}
		return newMoveError(StageCommit, src, dst, errors.Join(err, cleanup(tmp)))
	}

	if err := os.RemoveAll(src); err != nil {
		return newMoveError(StageRemoveSource, src, dst, fmt.Errorf("%w: %v", ErrSourceNotRemoved, err))
	}

	return nil
}
