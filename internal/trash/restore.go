package trash

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/babarot/trashcan/internal/core/atomic"
	"github.com/babarot/trashcan/internal/trash/core"
	"github.com/babarot/trashcan/internal/trash/xdg"
)

// Listing is the outcome of one scan over the trash directories.
// Only Files can be restored; the rest is reported as diagnostics.
type Listing struct {
	Files     []*core.File
	Orphans   []core.Entry
	Malformed []core.Entry
}

// Resolver picks and restores trashed files. It is built for one command
// and reads the disk again on every call.
type Resolver struct {
	dirs []core.Directory
}

func NewResolver(dirs []core.Directory) *Resolver {
	return &Resolver{dirs: dirs}
}

// All lists every record of every trash directory in discovery order
func (r *Resolver) All() Listing {
	return r.collect(func(string) bool { return true })
}

// Candidates lists the files that were deleted from exactly queryDir.
// Files deleted from its subdirectories are not included.
func (r *Resolver) Candidates(queryDir string) Listing {
	query := filepath.Clean(queryDir)
	return r.collect(func(originalPath string) bool {
		return filepath.Dir(originalPath) == query
	})
}

func (r *Resolver) collect(match func(originalPath string) bool) Listing {
	var l Listing
	for entry := range xdg.ScanAll(r.dirs) {
		switch entry.Kind {
		case core.EntryFile:
			if match(entry.File.OriginalPath) {
				l.Files = append(l.Files, entry.File)
			}
		case core.EntryOrphan:
			if match(entry.File.OriginalPath) {
				l.Orphans = append(l.Orphans, entry)
			}
		case core.EntryMalformed:
			l.Malformed = append(l.Malformed, entry)
		}
	}
	return l
}

// Select parses input as an index into files
func (r *Resolver) Select(files []*core.File, input string) (*core.File, error) {
	i, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || i < 0 || i >= len(files) {
		return nil, fmt.Errorf("%w: %q", core.ErrOutOfRange, input)
	}
	return files[i], nil
}

// Restore moves the payload of file back to dst, or to its original path
// when dst is empty, then drops the record. An existing dst is never
// replaced.
func (r *Resolver) Restore(file *core.File, dst string) error {
	if dst == "" {
		dst = file.OriginalPath
	}

	if _, err := os.Lstat(dst); err == nil {
		return core.NewStorageError("restore", dst, core.ErrFileExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return core.NewStorageError("restore", dst, err)
	}

	if _, err := os.Lstat(file.TrashPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.NewStorageError("restore", file.InfoPath, core.ErrOrphan)
		}
		return core.NewStorageError("restore", file.TrashPath, err)
	}

	if err := atomic.Move(file.TrashPath, dst); err != nil {
		if atomic.IsDestinationExists(err) {
			return core.NewStorageError("restore", dst, fmt.Errorf("%w: %v", core.ErrFileExists, err))
		}
		// dst may be complete here, but the record stays until the
		// payload is gone from the trash
		return core.NewStorageError("restore", dst, err)
	}

	if err := os.Remove(file.InfoPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove trash info after restore", "path", file.InfoPath, "error", err)
	}

	slog.Debug("restored", "from", file.TrashPath, "to", dst)
	return nil
}
