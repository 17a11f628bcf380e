package trash

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/babarot/trashcan/internal/core/atomic"
	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
	ufs "github.com/babarot/trashcan/internal/utils/fs"
	"github.com/samber/lo"
)

var (
	// ErrUnsafePath is returned for ".", "..", "/" and similar targets
	ErrUnsafePath = errors.New("refusing to trash unsafe path")

	// ErrInsideTrash is returned for a trash directory or anything in it
	ErrInsideTrash = errors.New("refusing to trash the trash directory")

	// ErrNoTrashDir is returned when no trash directory can take the file
	ErrNoTrashDir = errors.New("no usable trash directory")
)

// Put moves the file at src to the trash and returns the new trashed file
func (m *Manager) Put(src string) (*core.File, error) {
	if ufs.IsUnsafePath(src) {
		return nil, core.NewStorageError("put", src, ErrUnsafePath)
	}

	abs := src
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(m.env.Cwd, src)
	}
	abs = filepath.Clean(abs)

	if _, err := os.Lstat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, core.NewStorageError("put", src, core.ErrNotFound)
		}
		return nil, core.NewStorageError("put", src, err)
	}

	dir, err := m.selectDirectory(abs)
	if err != nil {
		return nil, core.NewStorageError("put", src, err)
	}

	file, err := m.putInto(dir, abs)
	if err != nil {
		return nil, core.NewStorageError("put", src, err)
	}
	return file, nil
}

// selectDirectory picks the home trash when path is on its volume, else
// the trash of the volume holding path, falling back to the home trash
// when allowed
func (m *Manager) selectDirectory(path string) (core.Directory, error) {
	home, err := m.locator.Home()
	if err != nil {
		return core.Directory{}, err
	}
	if ufs.IsWithin(path, home.Root) {
		return core.Directory{}, ErrInsideTrash
	}

	volume, err := m.volumes.Resolve(path)
	if err != nil {
		return core.Directory{}, err
	}

	dir := home
	if home.Volume != volume && !m.config.Core.Trash.HomeOnly {
		dirs, err := m.locator.ForPath(path)
		if err != nil {
			return core.Directory{}, err
		}
		if lo.ContainsBy(dirs, func(d core.Directory) bool { return ufs.IsWithin(path, d.Root) }) {
			return core.Directory{}, ErrInsideTrash
		}

		found, ok := lo.Find(dirs, func(d core.Directory) bool {
			return d.Volume == volume
		})
		switch {
		case ok:
			dir = found
		case m.config.Core.HomeFallback:
			slog.Debug("falling back to home trash", "path", path, "volume", volume)
		default:
			return core.Directory{}, fmt.Errorf("%w on %s", ErrNoTrashDir, volume)
		}
	}

	if err := xdg.EnsureDirectory(dir); err != nil {
		return core.Directory{}, err
	}
	return dir, nil
}

// putInto writes the record of path under a free name, then moves the
// payload next to it. The record is dropped again if the move fails.
func (m *Manager) putInto(dir core.Directory, path string) (*core.File, error) {
	recordPath := path
	if dir.Kind != core.KindHome {
		if rel, err := filepath.Rel(dir.Volume, path); err == nil {
			recordPath = rel
		}
	}

	info := &xdg.TrashInfo{
		Path:         recordPath,
		DeletionDate: m.clock.Now().Truncate(time.Second),
	}

	baseName := filepath.Base(path)
	stem := baseName
	for counter := 1; ; counter++ {
		if !ufs.Exists(dir.TrashPathFor(stem)) {
			err := info.Save(dir.InfoPathFor(stem))
			if err == nil {
				break
			}
			if !errors.Is(err, fs.ErrExist) {
				return nil, err
			}
		}
		stem = fmt.Sprintf("%s_%d", baseName, counter)
	}

	file := &core.File{
		Name:         baseName,
		OriginalPath: path,
		DeletedAt:    info.DeletionDate,
		InfoPath:     dir.InfoPathFor(stem),
		TrashPath:    dir.TrashPathFor(stem),
		Dir:          dir,
	}

	if err := atomic.Move(path, file.TrashPath); err != nil {
		if atomic.IsCommitted(err) {
			// the payload is in the trash, so its record stays with it
			return file, fmt.Errorf("trashed a copy but the original remains: %w", err)
		}
		if rmErr := os.Remove(file.InfoPath); rmErr != nil {
			slog.Warn("failed to remove trash info", "path", file.InfoPath, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to move file to trash: %w", err)
	}

	slog.Debug("moved to trash", "path", path, "trash", file.TrashPath)
	return file, nil
}
