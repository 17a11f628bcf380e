package xdg

import (
	"errors"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/babarot/trashcan/internal/trash/core"
)

// Scan walks the records of dir. The returned sequence holds no state:
// every range over it reads the directory again.
func Scan(dir core.Directory) iter.Seq[core.Entry] {
	return func(yield func(core.Entry) bool) {
		entries, err := os.ReadDir(dir.InfoDir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			slog.Warn("failed to read info directory", "dir", dir.InfoDir, "error", err)
			yield(core.Entry{
				Kind:     core.EntryMalformed,
				InfoPath: dir.InfoDir,
				Err:      core.NewStorageError("scan", dir.InfoDir, err),
			})
			return
		}

		for _, entry := range entries {
			name := entry.Name()
			if !entry.Type().IsRegular() || !strings.HasSuffix(name, core.InfoExt) {
				continue
			}
			if strings.HasPrefix(name, "._") {
				// exclude mac resource fork
				slog.Debug("skipped mac resource fork of .trashinfo", "path", name)
				continue
			}
			if !yield(scanRecord(dir, name)) {
				return
			}
		}
	}
}

// ScanAll chains the scans of dirs in order
func ScanAll(dirs []core.Directory) iter.Seq[core.Entry] {
	return func(yield func(core.Entry) bool) {
		for _, dir := range dirs {
			for entry := range Scan(dir) {
				if !yield(entry) {
					return
				}
			}
		}
	}
}

func scanRecord(dir core.Directory, name string) core.Entry {
	infoPath := filepath.Join(dir.InfoDir, name)
	stem := strings.TrimSuffix(name, core.InfoExt)

	info, err := LoadInfo(infoPath)
	if err != nil {
		slog.Debug("malformed trash info", "path", infoPath, "error", err)
		return core.Entry{Kind: core.EntryMalformed, InfoPath: infoPath, Err: err}
	}

	originalPath := info.AbsolutePath(dir.Volume)
	file := &core.File{
		Name:         filepath.Base(originalPath),
		OriginalPath: originalPath,
		DeletedAt:    info.DeletionDate,
		InfoPath:     infoPath,
		TrashPath:    dir.TrashPathFor(stem),
		Dir:          dir,
	}

	if _, err := os.Lstat(file.TrashPath); err != nil {
		slog.Debug("orphaned trash info", "path", infoPath, "error", err)
		return core.Entry{
			Kind:     core.EntryOrphan,
			File:     file,
			InfoPath: infoPath,
			Err:      core.NewStorageError("scan", infoPath, core.ErrOrphan),
		}
	}

	return core.Entry{Kind: core.EntryFile, File: file, InfoPath: infoPath}
}
