package xdg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/babarot/trashcan/internal/env"
	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/samber/lo"
)

// Locator discovers the trash directories applicable to the current user.
// Nothing is cached: every call reflects the live mount table and permissions.
type Locator struct {
	env          env.Environment
	volumes      *VolumeResolver
	homeTrashDir string
	homeOnly     bool
}

type LocatorOption func(*Locator)

// WithHomeTrashDir overrides $XDG_DATA_HOME/Trash
func WithHomeTrashDir(dir string) LocatorOption {
	return func(l *Locator) {
		l.homeTrashDir = dir
	}
}

// WithoutVolumes restricts the locator to the home trash
func WithoutVolumes() LocatorOption {
	return func(l *Locator) {
		l.homeOnly = true
	}
}

func NewLocator(e env.Environment, volumes *VolumeResolver, opts ...LocatorOption) *Locator {
	l := &Locator{env: e, volumes: volumes}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Home returns the home trash directory. It may not exist yet.
func (l *Locator) Home() (core.Directory, error) {
	root := l.homeTrashDir
	if root == "" {
		root = l.env.HomeTrashDir()
	}
	volume, err := l.volumes.Resolve(root)
	if err != nil {
		return core.Directory{}, fmt.Errorf("failed to resolve volume of home trash: %w", err)
	}
	return core.NewDirectory(root, core.KindHome, volume), nil
}

// All returns the home trash followed by one trash directory per volume,
// for reading. Nothing is created and unusable directories are dropped.
func (l *Locator) All() ([]core.Directory, error) {
	home, err := l.Home()
	if err != nil {
		return nil, err
	}
	dirs := []core.Directory{home}
	if l.homeOnly {
		return dirs, nil
	}

	volumes, err := l.volumes.Volumes()
	if err != nil {
		return nil, err
	}
	for _, volume := range volumes {
		if dir, ok := l.volumeTrash(volume, false); ok {
			dirs = append(dirs, dir)
		}
	}

	return uniqDirs(dirs), nil
}

// ForPath returns the trash directories a file at path may be moved to:
// the home trash first, then the trash of the volume holding path,
// which is created on demand.
func (l *Locator) ForPath(path string) ([]core.Directory, error) {
	home, err := l.Home()
	if err != nil {
		return nil, err
	}
	dirs := []core.Directory{home}
	if l.homeOnly {
		return dirs, nil
	}

	volume, err := l.volumes.Resolve(path)
	if err != nil {
		return nil, err
	}
	if dir, ok := l.volumeTrash(volume, true); ok {
		dirs = append(dirs, dir)
	}

	return uniqDirs(dirs), nil
}

// volumeTrash prefers $topdir/.Trash/$uid and falls back to $topdir/.Trash-$uid
func (l *Locator) volumeTrash(volume string, create bool) (core.Directory, bool) {
	if dir, ok := l.adminTrash(volume, create); ok {
		return dir, true
	}
	return l.topTrash(volume, create)
}

func (l *Locator) adminTrash(volume string, create bool) (core.Directory, bool) {
	shared := filepath.Join(volume, ".Trash")
	info, err := os.Lstat(shared)
	if err != nil {
		return core.Directory{}, false
	}
	if !isSafeSharedTrash(shared, info) {
		return core.Directory{}, false
	}

	root := filepath.Join(shared, strconv.Itoa(l.env.UID))
	if create {
		if err := os.Mkdir(root, 0700); err != nil && !os.IsExist(err) {
			slog.Debug("failed to create admin trash directory", "path", root, "error", err)
			return core.Directory{}, false
		}
	}
	if !isValidUserTrash(root, l.env.UID) {
		return core.Directory{}, false
	}
	if create {
		if err := createTrashDir(root); err != nil {
			slog.Debug("failed to prepare admin trash directory", "path", root, "error", err)
			return core.Directory{}, false
		}
	}

	return core.NewDirectory(root, core.KindVolumeAdmin, volume), true
}

func (l *Locator) topTrash(volume string, create bool) (core.Directory, bool) {
	root := filepath.Join(volume, fmt.Sprintf(".Trash-%d", l.env.UID))
	if create {
		if err := createTrashDir(root); err != nil {
			slog.Debug("failed to create trash directory", "path", root, "error", err)
			return core.Directory{}, false
		}
	}
	if !isValidUserTrash(root, l.env.UID) {
		return core.Directory{}, false
	}
	return core.NewDirectory(root, core.KindVolumeTop, volume), true
}

// isSafeSharedTrash checks $topdir/.Trash: a real directory with the
// sticky bit set
func isSafeSharedTrash(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		slog.Debug("is a symbolic link", "path", path)
		return false
	}
	if !info.IsDir() {
		slog.Debug("not a directory", "path", path)
		return false
	}
	if info.Mode()&os.ModeSticky == 0 {
		slog.Debug("sticky bit not set", "path", path)
		return false
	}
	return true
}

// isValidUserTrash checks a per-user trash root: a real directory owned by uid
func isValidUserTrash(path string, uid int) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		slog.Debug("is a symbolic link", "path", path)
		return false
	}
	if !info.IsDir() {
		slog.Debug("not a directory", "path", path)
		return false
	}
	if !ownedBy(info, uid) {
		slog.Debug("not owned by user", "path", path, "uid", uid)
		return false
	}

	for _, subdir := range []string{"files", "info"} {
		subdirPath := filepath.Join(path, subdir)
		info, err := os.Stat(subdirPath)
		if err != nil {
			continue
		}
		if info.Mode().Perm() != 0700 {
			slog.Debug("unexpected permissions on trash subdirectory",
				"path", subdirPath,
				"mode", info.Mode().Perm(),
				"expected", os.FileMode(0700))
		}
	}

	return true
}

// createTrashDir creates a trash directory with proper permissions
func createTrashDir(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create trash directory: %w", err)
	}

	for _, subdir := range []string{"files", "info"} {
		subdirPath := filepath.Join(path, subdir)
		if err := os.MkdirAll(subdirPath, 0700); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", subdir, err)
		}
	}

	return nil
}

// EnsureDirectory creates the info and files subdirectories of dir if needed
func EnsureDirectory(dir core.Directory) error {
	return createTrashDir(dir.Root)
}

func uniqDirs(dirs []core.Directory) []core.Directory {
	return lo.UniqBy(dirs, func(d core.Directory) string {
		return filepath.Clean(d.Root)
	})
}
